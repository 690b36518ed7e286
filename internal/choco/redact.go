package choco

import "strings"

const redactedValue = "[REDACTED]"

// secretFlags are choco options whose value is a credential.
var secretFlags = map[string]bool{
	"p":            true,
	"password":     true,
	"cp":           true,
	"certpassword": true,
	"k":            true,
	"key":          true,
	"apikey":       true,
	"api-key":      true,
}

// secretFlag reports whether arg names a secret option, and whether it carries
// its value inline (--password=x). choco accepts -, -- and / prefixes.
func secretFlag(arg string) (name string, inline bool, ok bool) {
	trimmed := strings.TrimLeft(arg, "-/")
	if trimmed == arg || trimmed == "" {
		return "", false, false
	}
	name, _, inline = strings.Cut(trimmed, "=")
	if !secretFlags[strings.ToLower(name)] {
		return "", false, false
	}
	return name, inline, true
}

// redactArgs returns a copy of args with credential values masked.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	maskNext := false
	for i, arg := range args {
		if maskNext {
			out[i] = redactedValue
			maskNext = false
			continue
		}
		out[i] = arg
		if _, inline, ok := secretFlag(arg); ok {
			if inline {
				out[i] = arg[:strings.Index(arg, "=")+1] + redactedValue
			} else {
				maskNext = true
			}
		}
	}
	return out
}

// secretValues returns the credential values present in args.
func secretValues(args []string) []string {
	var values []string
	for i, arg := range args {
		_, inline, ok := secretFlag(arg)
		if !ok {
			continue
		}
		if inline {
			_, v, _ := strings.Cut(arg, "=")
			values = append(values, v)
		} else if i+1 < len(args) {
			values = append(values, args[i+1])
		}
	}
	return values
}

// scrub masks every credential from args that appears in text, e.g. when
// choco echoes its command line to stderr.
func scrub(text string, args []string) string {
	for _, v := range secretValues(args) {
		if v != "" {
			text = strings.ReplaceAll(text, v, redactedValue)
		}
	}
	return text
}
