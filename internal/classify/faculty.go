package classify

import "strings"

// FacultyRule maps a concept keyword to a faculty. Rules are ordered;
// the first keyword contained in the top concept label wins.
type FacultyRule struct {
	Keyword string
	Faculty string
}

// KeywordFacultyTable classifies by case-sensitive substring containment
// against an ordered rule table, inspecting only the highest-ranked concept.
type KeywordFacultyTable struct {
	Rules []FacultyRule
}

// DefaultFacultyTable returns the rule table for the university's faculties.
func DefaultFacultyTable() KeywordFacultyTable {
	return KeywordFacultyTable{Rules: []FacultyRule{
		{"Computer Science", "Fakultas Teknik dan Ilmu Komputer"},
		{"Engineering", "Fakultas Teknik dan Ilmu Komputer"},
		{"Information Systems", "Fakultas Teknik dan Ilmu Komputer"},
		{"Software Engineering", "Fakultas Teknik dan Ilmu Komputer"},
		{"Mathematics", "Fakultas Teknik dan Ilmu Komputer"},
		{"Business", "Fakultas Ekonomi dan Bisnis"},
		{"Economics", "Fakultas Ekonomi dan Bisnis"},
		{"Management", "Fakultas Ekonomi dan Bisnis"},
		{"Accounting", "Fakultas Ekonomi dan Bisnis"},
		{"Communication", "Fakultas Ilmu Sosial dan Ilmu Politik"},
		{"Political Science", "Fakultas Ilmu Sosial dan Ilmu Politik"},
		{"Design", "Fakultas Desain"},
		{"Visual Communication", "Fakultas Desain"},
		{"Art", "Fakultas Desain"},
		{"Law", "Fakultas Hukum"},
	}}
}

// Faculty implements FacultyClassifier.
func (t KeywordFacultyTable) Faculty(concepts []string) string {
	if len(concepts) == 0 {
		return FacultyUnclassified
	}
	top := concepts[0]
	for _, rule := range t.Rules {
		if strings.Contains(top, rule.Keyword) {
			return rule.Faculty
		}
	}
	return FacultyUnclassified
}

// ProgramRule maps a concept keyword, scoped to a faculty substring, to a
// study program.
type ProgramRule struct {
	FacultyContains string
	Keyword         string
	Program         string
}

// KeywordProgramTable classifies programs from the top concept, scoped by
// the faculty already derived for the author.
type KeywordProgramTable struct {
	Rules []ProgramRule
}

// DefaultProgramTable returns the program rule table.
func DefaultProgramTable() KeywordProgramTable {
	return KeywordProgramTable{Rules: []ProgramRule{
		{"Teknik dan Ilmu Komputer", "Computer Science", "Teknik Informatika"},
		{"Teknik dan Ilmu Komputer", "Information Systems", "Sistem Informasi"},
		{"Teknik dan Ilmu Komputer", "Software", "Rekayasa Perangkat Lunak"},
		{"Teknik dan Ilmu Komputer", "Electrical", "Teknik Elektro"},
		{"Ekonomi", "Management", "Manajemen"},
		{"Ekonomi", "Accounting", "Akuntansi"},
		{"Ekonomi", "Economics", "Ekonomi Pembangunan"},
	}}
}

// Program implements ProgramClassifier.
func (t KeywordProgramTable) Program(concepts []string, faculty string) string {
	if len(concepts) == 0 {
		return ProgramUnclassified
	}
	top := concepts[0]
	for _, rule := range t.Rules {
		if strings.Contains(faculty, rule.FacultyContains) && strings.Contains(top, rule.Keyword) {
			return rule.Program
		}
	}
	return ProgramUnclassified
}
