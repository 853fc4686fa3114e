package heading

import (
	"reflect"
	"testing"
)

func TestIsPart(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Part 100", true},
		{"Part 100 — General Requirements", true},
		{"Part M", true},
		{"Part", false},
		{"Part m", false},
		{"PART 100", false},
		{"SECTION 101 — Roadway", false},
		{" Part 100", false},
	}
	for _, tt := range tests {
		if got := IsPart(tt.title); got != tt.want {
			t.Errorf("IsPart(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestIsSection(t *testing.T) {
	if !IsSection("SECTION 101 — Roadway") {
		t.Error("expected SECTION title to match")
	}
	if IsSection("Section 101") {
		t.Error("expected mixed-case title not to match")
	}
}

func TestHasDecimalNumbering(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"101.01 ASPHALT", true},
		{"a slab 2.5 inches thick", true},
		{"no numbering here", false},
		{"ends with 101.", false},
	}
	for _, tt := range tests {
		if got := HasDecimalNumbering(tt.text); got != tt.want {
			t.Errorf("HasDecimalNumbering(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestHasTwoCapitals(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"ASPHALT PAVEMENT", true},
		{"Asphalt", false},
		{"A. item", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasTwoCapitals(tt.s); got != tt.want {
			t.Errorf("HasTwoCapitals(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestValidSectionNumber(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"101", true},
		{"M01", true},
		{"M", false},
		{"", false},
		{"101.01", false},
		{"10 1", false},
	}
	for _, tt := range tests {
		if got := ValidSectionNumber(tt.s); got != tt.want {
			t.Errorf("ValidSectionNumber(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestValidSubtopicNumber(t *testing.T) {
	if !ValidSubtopicNumber("01") {
		t.Error("expected 01 to be valid")
	}
	for _, s := range []string{"", "1a", "01.2"} {
		if ValidSubtopicNumber(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestTitleAfterNumber(t *testing.T) {
	if got := TitleAfterNumber("101.02 CONCRETE CURBS"); got != "CONCRETE CURBS" {
		t.Errorf("got %q", got)
	}
	if got := TitleAfterNumber("101.02"); got != "" {
		t.Errorf("expected empty title, got %q", got)
	}
}

func TestMatcher_MatchSubtopic(t *testing.T) {
	m := ForSection("101")
	tests := []struct {
		line   string
		number string
		ok     bool
	}{
		{"101.02 CONCRETE CURBS", "101.02", true},
		{"101.1 General", "101.1", true},
		{"101.02 lowercase title", "", false},
		{"1010.02 CONCRETE", "", false},
		{"102.02 CONCRETE", "", false},
		{"101.02 CONCRETE", "101.02", true},
		{"See 101.02 CONCRETE", "", false},
	}
	for _, tt := range tests {
		number, ok := m.MatchSubtopic(tt.line)
		if ok != tt.ok || number != tt.number {
			t.Errorf("MatchSubtopic(%q) = (%q, %v), want (%q, %v)", tt.line, number, ok, tt.number, tt.ok)
		}
	}
}

func TestMatcher_SectionNumberIsQuoted(t *testing.T) {
	m := ForSection("1.1")
	if _, ok := m.MatchSubtopic("1x1.01 ASPHALT"); ok {
		t.Error("expected section number dot to be matched literally")
	}
}

func TestMatcher_IsFirstSubtopic(t *testing.T) {
	m := ForSection("101")
	tests := []struct {
		line string
		want bool
	}{
		{"101.01 ASPHALT PAVEMENT", true},
		{"101.01   ASPHALT", true},
		{"101.01 Asphalt", false},
		{"101.02 ASPHALT", false},
	}
	for _, tt := range tests {
		if got := m.IsFirstSubtopic(tt.line); got != tt.want {
			t.Errorf("IsFirstSubtopic(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestMatcher_IsHeading(t *testing.T) {
	m := ForSection("101")
	tests := []struct {
		line string
		want bool
	}{
		{"101.03 Drainage Structures", true},
		{"101.03 DRAINAGE", true},
		{"101.03 A", false},
		{"101.03 A. item", false},
		{"101.03", false},
	}
	for _, tt := range tests {
		if got := m.IsHeading(tt.line); got != tt.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestMatcher_HeadingFor(t *testing.T) {
	re := ForSection("101").HeadingFor("02")
	if !re.MatchString("101.02 CONCRETE CURBS") {
		t.Error("expected heading to match")
	}
	if re.MatchString("101.021 CONCRETE CURBS") {
		t.Error("expected longer number not to match")
	}
	if re.MatchString("101.03 CONCRETE CURBS") {
		t.Error("expected other subtopic not to match")
	}
}

func TestMatcher_LogicalLines(t *testing.T) {
	m := ForSection("101")
	page := "101.01\nASPHALT PAVEMENT\n  Some body text.  \n101.02 CONCRETE CURBS\nMore text."
	want := []string{
		"101.01 ASPHALT PAVEMENT",
		"Some body text.",
		"101.02 CONCRETE CURBS",
		"More text.",
	}
	if got := m.LogicalLines(page); !reflect.DeepEqual(got, want) {
		t.Errorf("LogicalLines:\n got %q\nwant %q", got, want)
	}
}

func TestMatcher_LogicalLinesNoJoin(t *testing.T) {
	m := ForSection("101")
	tests := []struct {
		name string
		page string
		want []string
	}{
		{"lowercase follower", "101.01\nasphalt", []string{"101.01", "asphalt"}},
		{"bare number last", "text\n101.01", []string{"text", "101.01"}},
		{"other section", "102.01\nASPHALT", []string{"102.01", "ASPHALT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.LogicalLines(tt.page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatcher_LogicalLinesHeadingFollower(t *testing.T) {
	m := ForSection("M01")
	tests := []struct {
		name string
		page string
		want []string
	}{
		{"subtopic follower", "M01.02\nM01.03 TESTING", []string{"M01.02", "M01.03 TESTING"}},
		{"bare follower", "M01.02\nM01.03\nTESTING", []string{"M01.02", "M01.03 TESTING"}},
		{"title follower", "M01.02\nMATERIALS", []string{"M01.02 MATERIALS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.LogicalLines(tt.page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
