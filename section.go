package tenk

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionID is the canonical key of a Form 10-K Item.
type SectionID string

// Supported sections, in filing order.
const (
	SectionBusiness                SectionID = "business"
	SectionRiskFactors             SectionID = "risk_factors"
	SectionUnresolvedStaffComments SectionID = "unresolved_staff_comments"
	SectionCybersecurity           SectionID = "cybersecurity"
	SectionProperties              SectionID = "properties"
	SectionLegalProceedings        SectionID = "legal_proceedings"
	SectionMineSafety              SectionID = "mine_safety"
	SectionMarket                  SectionID = "market"
	SectionSelectedFinancialData   SectionID = "selected_financial_data"
	SectionMDA                     SectionID = "mda"
	SectionMarketRisk              SectionID = "market_risk"
	SectionFinancialStatements     SectionID = "financial_statements"
	SectionAccountantChanges       SectionID = "accountant_changes"
	SectionControls                SectionID = "controls"
	SectionOtherInformation        SectionID = "other_information"
	SectionForeignInspections      SectionID = "foreign_inspections"
	SectionDirectors               SectionID = "directors"
	SectionExecutiveCompensation   SectionID = "executive_compensation"
	SectionSecurityOwnership       SectionID = "security_ownership"
	SectionRelationships           SectionID = "relationships"
	SectionAccountantFees          SectionID = "accountant_fees"
	SectionExhibits                SectionID = "exhibits"
	SectionFormSummary             SectionID = "form_summary"
)

// Section describes one Item of Form 10-K.
type Section struct {
	ID    SectionID `json:"id"`
	Item  string    `json:"item"`
	Title string    `json:"title"`
	Part  string    `json:"part"`
}

// Label returns the conventional heading, e.g. "Item 1A. Risk Factors".
func (s Section) Label() string {
	return "Item " + s.Item + ". " + s.Title
}

// sectionTable is the anchor table. Titles are regular expression fragments
// matched case-insensitively after the item number; a literal space stands for
// any run of whitespace. Aliases are extra names accepted by ParseSectionID.
// Order is filing order: every later row is a successor of every earlier row.
var sectionTable = []struct {
	Section
	titles  []string
	aliases []string
}{
	{Section{SectionBusiness, "1", "Business", "I"},
		[]string{`business`}, nil},
	{Section{SectionRiskFactors, "1A", "Risk Factors", "I"},
		[]string{`risk factors`}, nil},
	{Section{SectionUnresolvedStaffComments, "1B", "Unresolved Staff Comments", "I"},
		[]string{`unresolved staff`}, nil},
	{Section{SectionCybersecurity, "1C", "Cybersecurity", "I"},
		[]string{`cyber`}, nil},
	{Section{SectionProperties, "2", "Properties", "I"},
		[]string{`properties`, `description of propert`}, nil},
	{Section{SectionLegalProceedings, "3", "Legal Proceedings", "I"},
		[]string{`legal proceedings`}, nil},
	{Section{SectionMineSafety, "4", "Mine Safety Disclosures", "I"},
		[]string{`mine safety`, `\(?removed and reserved\)?`, `submission of matters`}, nil},
	{Section{SectionMarket, "5", "Market for Registrant's Common Equity, Related Stockholder Matters and Issuer Purchases of Equity Securities", "II"},
		[]string{`market for`}, []string{"market for registrant's common equity"}},
	{Section{SectionSelectedFinancialData, "6", "Selected Financial Data", "II"},
		[]string{`\[?reserved\]?`, `selected (?:consolidated )?financial data`, `\(?removed and reserved\)?`}, nil},
	{Section{SectionMDA, "7", "Management's Discussion and Analysis of Financial Condition and Results of Operations", "II"},
		[]string{`management(?:'|\x{2019})?s discussion`}, []string{"management's discussion and analysis", "md&a"}},
	{Section{SectionMarketRisk, "7A", "Quantitative and Qualitative Disclosures About Market Risk", "II"},
		[]string{`quantitative and qualitative`}, []string{"quantitative and qualitative disclosures"}},
	{Section{SectionFinancialStatements, "8", "Financial Statements and Supplementary Data", "II"},
		[]string{`(?:consolidated )?financial statements`}, []string{"financial statements"}},
	{Section{SectionAccountantChanges, "9", "Changes in and Disagreements with Accountants on Accounting and Financial Disclosure", "II"},
		[]string{`changes in and disagreements`}, nil},
	{Section{SectionControls, "9A", "Controls and Procedures", "II"},
		[]string{`controls and procedures`}, nil},
	{Section{SectionOtherInformation, "9B", "Other Information", "II"},
		[]string{`other information`}, nil},
	{Section{SectionForeignInspections, "9C", "Disclosure Regarding Foreign Jurisdictions that Prevent Inspections", "II"},
		[]string{`disclosure regarding foreign`}, nil},
	{Section{SectionDirectors, "10", "Directors, Executive Officers and Corporate Governance", "III"},
		[]string{`directors`}, nil},
	{Section{SectionExecutiveCompensation, "11", "Executive Compensation", "III"},
		[]string{`executive compensation`}, nil},
	{Section{SectionSecurityOwnership, "12", "Security Ownership of Certain Beneficial Owners and Management and Related Stockholder Matters", "III"},
		[]string{`security ownership`}, nil},
	{Section{SectionRelationships, "13", "Certain Relationships and Related Transactions, and Director Independence", "III"},
		[]string{`certain relationships`}, nil},
	{Section{SectionAccountantFees, "14", "Principal Accountant Fees and Services", "III"},
		[]string{`principal account`}, nil},
	{Section{SectionExhibits, "15", "Exhibits and Financial Statement Schedules", "IV"},
		[]string{`exhibits`}, nil},
	{Section{SectionFormSummary, "16", "Form 10-K Summary", "IV"},
		[]string{`form 10-k summary`}, nil},
}

const (
	// space matches one whitespace character, including the no-break and
	// typographic spaces common in EDGAR HTML.
	space = `[\s\x{00a0}\x{2000}-\x{200b}\x{202f}\x{3000}]`

	// lead matches what may precede "Item" on a heading line: whitespace and
	// Markdown emphasis, heading, quote or table markers.
	lead = `[\s\x{00a0}\x{2000}-\x{200b}\x{202f}\x{3000}*#_>|]`

	// itemPunct is the optional punctuation between an item number and its title.
	itemPunct = `[.:\-\x{2013}\x{2014}]`
)

// sectionAnchors holds the compiled patterns for one section.
type sectionAnchors struct {
	Section

	// start matches a full heading line for the section.
	start *regexp.Regexp

	// end matches the bare item heading of any successor; nil for the last section.
	end *regexp.Regexp

	// earlier matches the bare item heading of any predecessor; nil for the
	// first section.
	earlier *regexp.Regexp

	// vocab holds the words of the title. Text after the matched title on
	// the heading line is part of the heading only if every word is in vocab.
	vocab map[string]bool

	successors []SectionID
}

var (
	sections      []Section
	anchorsByID   map[SectionID]*sectionAnchors
	sectionByName map[string]SectionID
)

func init() {
	anchorsByID = make(map[SectionID]*sectionAnchors, len(sectionTable))
	sectionByName = make(map[string]SectionID)

	for i, row := range sectionTable {
		a := &sectionAnchors{
			Section: row.Section,
			start:   regexp.MustCompile(startPattern(row.Item, row.titles)),
			vocab:   make(map[string]bool),
		}
		for _, w := range words(row.Title) {
			a.vocab[w] = true
		}

		var prev []string
		for _, p := range sectionTable[:i] {
			prev = append(prev, itemPattern(p.Item))
		}
		if len(prev) > 0 {
			a.earlier = regexp.MustCompile(headingPattern(prev))
		}

		var items []string
		for _, next := range sectionTable[i+1:] {
			a.successors = append(a.successors, next.ID)
			items = append(items, itemPattern(next.Item))
		}
		if len(items) > 0 {
			a.end = regexp.MustCompile(headingPattern(items))
		}

		sections = append(sections, row.Section)
		anchorsByID[row.ID] = a

		for _, name := range append([]string{string(row.ID), row.Item, "item " + row.Item, row.Title}, row.aliases...) {
			sectionByName[normalizeName(name)] = row.ID
		}
	}
}

// startPattern builds the start anchor: a line beginning with "Item <n>",
// optional punctuation, then one of the titles. Markdown markers may appear
// around the number. The match ends with the title; see headingEnd for the
// rest of the line.
func startPattern(item string, titles []string) string {
	alts := make([]string, len(titles))
	for i, t := range titles {
		alts[i] = strings.ReplaceAll(t, " ", space+"+")
	}
	return `(?im)^` + lead + `*item` + space + `*` + itemPattern(item) +
		lead + `*` + itemPunct + `?` + lead + `*(?:` + strings.Join(alts, "|") + `)`
}

// headingEnd returns where the body starts after a title match ending at
// pos. Title words that follow on the same line ("and Analysis") belong to
// the heading. The body starts at the first other word, unless the rest of
// the line is only page numbers or Markdown markers ("| 12 |"), in which case
// it starts on the next line.
func (a *sectionAnchors) headingEnd(document string, pos int) int {
	// Title fragments may stop inside a word ("cyber" in "Cybersecurity").
	for pos < len(document) {
		r, size := utf8.DecodeRuneInString(document[pos:])
		if !unicode.IsLetter(r) {
			break
		}
		pos += size
	}

	eol := strings.IndexByte(document[pos:], '\n')
	if eol < 0 {
		eol = len(document) - pos
	}
	rest := document[pos : pos+eol]

	first := -1
	for i := 0; i < len(rest); {
		r, size := utf8.DecodeRuneInString(rest[i:])
		if !isWordRune(r) {
			i += size
			continue
		}
		j := i
		for j < len(rest) {
			r, size := utf8.DecodeRuneInString(rest[j:])
			if !isWordRune(r) {
				break
			}
			j += size
		}
		w := words(rest[i:j])
		if len(w) == 0 || !a.vocab[w[0]] {
			if first < 0 {
				first = i
			}
			if strings.Trim(rest[i:j], "0123456789") != "" {
				return pos + first
			}
		}
		i = j
	}
	return pos + eol
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’'
}

// words splits s into lower-case words, dropping apostrophes so that
// "Registrant’s" and "Registrant's" agree.
func words(s string) []string {
	s = strings.NewReplacer("'", "", "’", "").Replace(strings.ToLower(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// headingPattern builds an end anchor matching "Item <n>" for any of the
// given item patterns, as long as the number is not followed by another
// digit or letter.
func headingPattern(items []string) string {
	return `(?im)^` + lead + `*item` + space + `*(?:` + strings.Join(items, "|") + `)(?:[^0-9A-Za-z]|$)`
}

// itemPattern tolerates whitespace between the number and the letter suffix
// ("1A" and "1 A").
func itemPattern(item string) string {
	digits := strings.TrimRight(item, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if suffix := item[len(digits):]; suffix != "" {
		return digits + space + `*` + suffix
	}
	return digits
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.TrimSuffix(s, ".")
	return strings.Join(strings.Fields(s), " ")
}

// Sections returns all supported sections in filing order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// FindSection returns the section for id.
func FindSection(id SectionID) (Section, bool) {
	a, ok := anchorsByID[id]
	if !ok {
		return Section{}, false
	}
	return a.Section, true
}

// Successors returns the sections that follow id in filing order.
// Returns nil for the last section or an unsupported id.
func Successors(id SectionID) []SectionID {
	a, ok := anchorsByID[id]
	if !ok || len(a.successors) == 0 {
		return nil
	}
	out := make([]SectionID, len(a.successors))
	copy(out, a.successors)
	return out
}

// Validate returns EINVALID if id is not a supported section.
func (id SectionID) Validate() error {
	if _, ok := anchorsByID[id]; !ok {
		return Errorf(EINVALID, "unsupported section %q", string(id))
	}
	return nil
}

// ParseSectionID resolves a canonical ID, a display title, or an item label
// ("1A", "Item 1A") to a SectionID. Matching ignores case and extra spaces.
func ParseSectionID(s string) (SectionID, error) {
	if id, ok := sectionByName[normalizeName(s)]; ok {
		return id, nil
	}
	return "", Errorf(EINVALID, "unsupported section %q", s)
}
