package vocab

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Entry is the canonical shape of one class, property, individual or
// datatype declaration. List fields are always lists, possibly empty.
type Entry struct {
	ID         string
	Label      string
	Comment    string
	Deprecated bool
	Status     Status
	External   bool

	Upper      []string
	UpperUnion bool

	Domain     []string
	Range      []string
	RangeUnion bool

	DefinedBy []string
	SeeAlso   []Link
	Examples  []Example
	Context   []string
	Types     []string
	OneOf     []string

	Dataset   bool
	Container Container
	Pattern   string
	KnownAs   string
}

// Normalize converts one decoded entry into its canonical form. It does not
// touch any build state.
func Normalize(raw map[string]any) (Entry, error) {
	var e Entry
	var violations []string
	fail := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	e.ID = scalar(raw["id"])
	if e.ID == "" {
		return e, &SchemaError{Violations: []string{"entry without id"}}
	}

	e.Label = scalar(raw["label"])
	if e.Label == "" {
		_, local := SplitCurie(e.ID)
		if IsURL(e.ID) {
			local = e.ID
		}
		e.Label = DefaultLabel(local)
	}
	e.Comment = CleanComment(scalar(raw["comment"]))

	e.Upper = stringList(raw["upper_value"])
	e.Domain = stringList(raw["domain"])
	e.Range = stringList(raw["range"])
	e.DefinedBy = stringList(raw["defined_by"])
	e.Context = stringList(raw["context"])
	e.Types = stringList(raw["type"])
	e.OneOf = stringList(raw["one_of"])
	e.SeeAlso = links(raw["see_also"])
	e.Examples = examples(raw["example"])
	e.Pattern = scalar(raw["pattern"])
	e.KnownAs = scalar(raw["known_as"])

	flags := []struct {
		key string
		dst *bool
	}{
		{"external", &e.External},
		{"upper_union", &e.UpperUnion},
		{"range_union", &e.RangeUnion},
		{"dataset", &e.Dataset},
		{"deprecated", &e.Deprecated},
	}
	for _, f := range flags {
		v, ok, err := boolField(raw, f.key)
		if err != nil {
			fail("%s: %v", e.ID, err)
			continue
		}
		if ok {
			*f.dst = v
		}
	}

	if c := Container(scalar(raw["container"])); c != ContainerNone {
		switch c {
		case ContainerList, ContainerSet, ContainerGraph:
			e.Container = c
		default:
			fail("%s: unknown container %q", e.ID, c)
		}
	}

	if s := Status(scalar(raw["status"])); s != "" {
		if !s.Valid() {
			fail("%s: unknown status %q", e.ID, s)
		}
		e.Status = s
		e.Deprecated = s == StatusDeprecated
	} else if e.Deprecated {
		e.Status = StatusDeprecated
	} else {
		e.Status = StatusStable
	}

	if len(violations) > 0 {
		return e, &SchemaError{Violations: violations}
	}
	return e, nil
}

// DefaultLabel renders an identifier as a label: the first letter is upper
// cased and every later capital becomes a space plus its lower case form.
func DefaultLabel(id string) string {
	if id == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(id)
	var sb strings.Builder
	sb.WriteRune(unicode.ToUpper(first))
	for _, r := range id[size:] {
		if unicode.IsUpper(r) {
			sb.WriteByte(' ')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// quotePairs are the enclosing quotes stripped from comments.
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// CleanComment drops one trailing line break and then one layer of
// enclosing quotes.
func CleanComment(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return s[len(q[0]) : len(s)-len(q[1])]
		}
	}
	return s
}

// scalar renders a decoded scalar as a string. Missing values are empty.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

// stringList accepts a scalar or a list of scalars.
func stringList(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s := scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	default:
		if s := scalar(x); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// boolField reads an optional boolean, accepting the strings "true" and
// "false" as written by hand.
func boolField(raw map[string]any, key string) (value, ok bool, err error) {
	v, present := raw[key]
	if !present || v == nil {
		return false, false, nil
	}
	switch x := v.(type) {
	case bool:
		return x, true, nil
	case string:
		switch strings.ToLower(x) {
		case "true", "yes":
			return true, true, nil
		case "false", "no":
			return false, true, nil
		}
	}
	return false, false, fmt.Errorf("%s must be a boolean, got %v", key, v)
}

// asList wraps a single block into a one element list.
func asList(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		return x
	default:
		return []any{x}
	}
}

func links(v any) []Link {
	out := []Link{}
	for _, item := range asList(v) {
		switch x := item.(type) {
		case map[string]any:
			l := Link{Label: scalar(x["label"]), URL: scalar(x["url"])}
			if l.URL != "" {
				out = append(out, l)
			}
		default:
			if s := scalar(x); s != "" {
				out = append(out, Link{URL: s})
			}
		}
	}
	return out
}

func examples(v any) []Example {
	out := []Example{}
	for _, item := range asList(v) {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ex := Example{Label: scalar(m["label"])}
		switch j := m["json"].(type) {
		case nil:
			continue
		case string:
			ex.JSON = j
		default:
			data, err := json.MarshalIndent(j, "", "  ")
			if err != nil {
				ex.JSON = fmt.Sprint(j)
			} else {
				ex.JSON = string(data)
			}
		}
		out = append(out, ex)
	}
	return out
}
