package gpath

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Path
		wantErr bool
	}{
		{name: "empty", input: "", want: &Path{}},
		{name: "root", input: "/", want: &Path{}},
		{name: "field", input: "/Tag", want: &Path{Head: &Segment{Label: "Tag"}}},
		{
			name:  "nested",
			input: "/A/B",
			want:  &Path{Head: &Segment{Label: "A", Next: &Segment{Label: "B"}}},
		},
		{
			name:  "list element",
			input: "/ItemList[2]/Tag",
			want: &Path{Head: &Segment{Label: "ItemList", Index: intPtr(2),
				Next: &Segment{Label: "Tag"}}},
		},
		{
			name:  "repeated slashes and spaces",
			input: "//A/ B //",
			want:  &Path{Head: &Segment{Label: "A", Next: &Segment{Label: "B"}}},
		},
		{
			name:  "language",
			input: "/LocName/4",
			want:  &Path{Head: &Segment{Label: "LocName", Next: &Segment{Label: "4"}}},
		},
		{name: "value", input: "/Tag$", want: &Path{Head: &Segment{Label: "Tag"}, Modifier: ValueModifier}},
		{name: "kind", input: "/Tag?", want: &Path{Head: &Segment{Label: "Tag"}, Modifier: KindModifier}},
		{name: "strref", input: "/Name%", want: &Path{Head: &Segment{Label: "Name"}, Modifier: StrRefModifier}},
		{name: "root kind", input: "/?", want: &Path{Modifier: KindModifier}},
		{name: "negative index", input: "/A[-1]", wantErr: true},
		{name: "empty index", input: "/A[]", wantErr: true},
		{name: "index without label", input: "/[0]", wantErr: true},
		{name: "unbalanced", input: "/A]", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "/"},
		{"A", "/A"},
		{"/A/B[0]/", "/A/B[0]"},
		{"/A$", "/A$"},
		{"?", "/?"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		seg  Segment
		lang uint32
		ok   bool
	}{
		{Segment{Label: "0"}, 0, true},
		{Segment{Label: "4"}, 4, true},
		{Segment{Label: "4294967295"}, 4294967295, true},
		{Segment{Label: "4294967296"}, 0, false},
		{Segment{Label: "x1"}, 0, false},
		{Segment{Label: "1", Index: intPtr(0)}, 0, false},
	}
	for _, tt := range tests {
		lang, ok := tt.seg.Language()
		if lang != tt.lang || ok != tt.ok {
			t.Errorf("%q.Language() = %d, %t, want %d, %t", tt.seg.SegmentString(), lang, ok, tt.lang, tt.ok)
		}
	}
}

func TestParentAppend(t *testing.T) {
	p := MustParse("/A/B[1]/C$")
	if got := p.Parent().String(); got != "/A/B[1]" {
		t.Errorf("parent: got %q", got)
	}
	if got := p.Append(Element("L", 3)).String(); got != "/A/B[1]/C/L[3]$" {
		t.Errorf("append: got %q", got)
	}
	if got := p.WithModifier(NoModifier).Append(Language(2)).String(); got != "/A/B[1]/C/2" {
		t.Errorf("language: got %q", got)
	}
	if got := p.Len(); got != 3 {
		t.Errorf("len: got %d", got)
	}
	if got := p.Last().SegmentString(); got != "C" {
		t.Errorf("last: got %q", got)
	}
	if !MustParse("/").IsRoot() {
		t.Errorf("root path not root")
	}
}

func TestJoinSplit(t *testing.T) {
	joins := []struct{ a, b, want string }{
		{"/A", "B/C", "/A/B/C"},
		{"", "B", "/B"},
		{"/A/", "/B", "/A/B"},
		{"/", "", "/"},
	}
	for _, tt := range joins {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
	splits := []struct{ in, first, rest string }{
		{"/A[0]/B/C", "A[0]", "/B/C"},
		{"/A", "A", "/"},
		{"/", "", "/"},
	}
	for _, tt := range splits {
		first, rest := Split(tt.in)
		if first != tt.first || rest != tt.rest {
			t.Errorf("Split(%q) = %q, %q, want %q, %q", tt.in, first, rest, tt.first, tt.rest)
		}
	}
	parent, last := RSplit("/A/B[1]/C")
	if parent != "/A/B[1]" || last != "C" {
		t.Errorf("RSplit: got %q, %q", parent, last)
	}
}

func intPtr(i int) *int {
	return &i
}
