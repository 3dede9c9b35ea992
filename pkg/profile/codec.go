package profile

import (
	"bufio"
	"strings"
)

// The wire format is line-oriented: a "Host <alias>" line opens an entry,
// indented "<Keyword> <value>" lines fill its fields, and a blank line
// separates entries. Only the keywords below are modeled; anything else is
// dropped on a load/save cycle. The format has no nesting and no escaping,
// so a single forward pass with no backtracking is sufficient.

// hostDeclPrefix opens a new entry. The trailing space matters: it keeps
// "HostName" lines from being mistaken for declarations.
const hostDeclPrefix = "Host "

// fieldIndent is the indentation emitted before each field line.
const fieldIndent = "    "

// passwordKeyword is the annotated-comment form used to carry a password
// through the file without making it a real ssh directive.
const passwordKeyword = "#Password"

// fieldKeywords maps each optional field to its exact, case-sensitive line
// prefix, in match and emission order.
var fieldKeywords = []struct {
	field   Field
	keyword string
}{
	{FieldHostName, "HostName"},
	{FieldUser, "User"},
	{FieldPort, "Port"},
	{FieldIdentityFile, "IdentityFile"},
	{FieldProxyJump, "ProxyJump"},
	{FieldForwardAgent, "ForwardAgent"},
	{FieldPassword, passwordKeyword},
}

// Parse scans config text into an ordered sequence of Profiles.
//
// Behavior on odd input is deliberately forgiving: lines before the first
// Host declaration, blank lines, and lines matching no known keyword are
// silently ignored, and a Host block still open at end of input is flushed.
// Parse never fails; arbitrary text yields at worst an empty sequence.
func Parse(text string) []Profile {
	var out []Profile
	var cur *Profile

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	for sc.Scan() {
		trimmed := strings.TrimSpace(sc.Text())
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, hostDeclPrefix) {
			name := strings.TrimSpace(trimmed[len(hostDeclPrefix):])
			if cur != nil {
				out = append(out, *cur)
				cur = nil
			}
			// A declaration with no alias cannot form a valid Profile;
			// treat it like any other unrecognized line.
			if name == "" {
				continue
			}
			// Every new declaration starts from a clean slate: no field
			// carries over from the previous entry.
			cur = &Profile{Name: name}
			continue
		}

		if cur == nil {
			continue
		}
		for _, fk := range fieldKeywords {
			if rest, ok := strings.CutPrefix(trimmed, fk.keyword); ok {
				cur.Set(fk.field, strings.TrimSpace(rest))
				break
			}
		}
	}

	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// Serialize renders profiles back to config text: one Host line per entry,
// one indented line per set field in fixed keyword order, and a blank
// separator line after each entry. Absent fields produce no output at all.
//
// Serialize is a pure transform; writing the result to disk is the store's
// concern.
func Serialize(profiles []Profile) string {
	var b strings.Builder
	for _, p := range profiles {
		b.WriteString(hostDeclPrefix)
		b.WriteString(p.Name)
		b.WriteByte('\n')
		for _, fk := range fieldKeywords {
			if v, ok := p.Get(fk.field); ok {
				b.WriteString(fieldIndent)
				b.WriteString(fk.keyword)
				b.WriteByte(' ')
				b.WriteString(v)
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
