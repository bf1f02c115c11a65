package gen

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Funcs are the functions available to entity templates.
	Funcs = template.FuncMap{
		"camel":  ToCamelCase,
		"pascal": Pascal,
		"quote":  strconv.Quote,
		"pybool": pyBool,
		"join":   strings.Join,
	}
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// isSeparator reports whether r separates words in a table name.
func isSeparator(r rune) bool {
	return r == '_' || r == ' ' || r == '-'
}

// ToCamelCase converts a snake, kebab or space separated name to camel case.
// Separators are dropped and the rune following each separator is upper
// cased; the start of the string counts as a separator. Other runes keep
// their case:
//
//	user_account => UserAccount
//	orders       => Orders
//	_leading     => Leading
//	Orders       => Orders
func ToCamelCase(s string) string {
	var (
		b     strings.Builder
		upper = cases.Upper(language.Und)
		prev  = '_'
	)
	b.Grow(len(s))
	for _, r := range s {
		if isSeparator(r) {
			prev = r
			continue
		}
		if isSeparator(prev) {
			b.WriteString(upper.String(string(r)))
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// Pascal converts a name to a Go-style exported identifier, keeping
// well-known acronyms upper cased:
//
//	user_id   => UserID
//	api_url   => APIURL
//	full-name => FullName
func Pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
		} else {
			words[i] = rules.Capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// Singular returns the singular form of the last word of a camel-cased name.
func Singular(s string) string {
	return rules.Singularize(s)
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HCL", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC",
		"MB", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO",
		"TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID",
		"VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}
