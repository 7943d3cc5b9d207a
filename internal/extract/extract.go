// Package extract pulls structured lesion measurements out of free-text
// medical report content.
package extract

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// ErrNoExamDate is returned when report text carries no recognizable exam
// date. Measurements without a date cannot be placed on a timeline, so this
// is a hard failure rather than a partial result.
var ErrNoExamDate = errors.New("no exam date found in report text")

// datePatterns are tried in order. Labeled dates take precedence over bare
// ones so that unrelated dates elsewhere in the report are not picked up.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:data\s+do\s+exame|data|exame)\s*[:\-]\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`),
	regexp.MustCompile(`(?i)(?:data\s+do\s+exame|data|exame)\s*[:\-]\s*(\d{1,2}\s+de\s+[a-zç]+\s+de\s+\d{4})`),
	regexp.MustCompile(`(\d{4}[/\-]\d{1,2}[/\-]\d{1,2})`),
	regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`),
	regexp.MustCompile(`(?i)(\d{1,2}\s+de\s+[a-zç]+\s+de\s+\d{4})`),
}

// lesionPatterns match typed lesion mentions like "Lesão A: 2,3 cm".
// The generic pattern is the fallback for untyped mentions.
var (
	lesionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(les[ãa]o\s+[a-zà-ú0-9]+)\s*[:\-]?\s*(\d+[,.]\d+|\d+)\s*(cm|mm)`),
		regexp.MustCompile(`(?i)(n[óo]dulo\s+[a-zà-ú0-9]+)\s*[:\-]?\s*(\d+[,.]\d+|\d+)\s*(cm|mm)`),
		regexp.MustCompile(`(?i)(met[áa]stase\s+[a-zà-ú0-9]+)\s*[:\-]?\s*(\d+[,.]\d+|\d+)\s*(cm|mm)`),
		regexp.MustCompile(`(?i)(tumor\s+[a-zà-ú0-9]+)\s*[:\-]?\s*(\d+[,.]\d+|\d+)\s*(cm|mm)`),
		regexp.MustCompile(`(?i)(massa\s+[a-zà-ú0-9]+)\s*[:\-]?\s*(\d+[,.]\d+|\d+)\s*(cm|mm)`),
	}
	genericLesionPattern = regexp.MustCompile(`(?i)([a-zà-ú]+(?:\s+[a-zà-ú0-9]+)?)\s*[:\-]\s*(\d+[,.]\d+|\d+)\s*(cm|mm)`)

	measurementRe = regexp.MustCompile(`\d+[,.]\d+\s*(cm|mm)`)
)

// treatmentKeywords are scanned case-insensitively; matched keywords are
// reported in capitalized form.
var treatmentKeywords = []string{
	"cirurgia", "ressecção", "quimioterapia", "radioterapia",
	"tratamento", "remoção", "excisão", "ablação",
}

// medicalReportKeywords indicate report-like content for validation.
var medicalReportKeywords = []string{
	"laudo", "exame", "ressonância", "tomografia", "ultrassom", "raio-x",
}

// ExtractRecords parses report text into measurements. A missing exam date
// is an error; a report with a date but no lesion mentions yields an empty
// slice and no error.
func ExtractRecords(text, sourceFile string) ([]schema.Measurement, error) {
	examDate, err := extractExamDate(text)
	if err != nil {
		return nil, err
	}

	treatments := ExtractTreatments(text)

	lesions := extractLesionSizes(text)
	records := make([]schema.Measurement, 0, len(lesions))
	for _, l := range lesions {
		records = append(records, schema.Measurement{
			LesionID:   l.id,
			ExamDate:   examDate,
			SizeCM:     l.sizeCM,
			Treatments: treatments,
			SourceFile: sourceFile,
		})
	}
	return records, nil
}

// ExtractTreatments finds treatment keywords mentioned anywhere in the text.
func ExtractTreatments(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range treatmentKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, schema.CapitalizeWords(kw))
		}
	}
	return found
}

// ValidateContent reports which extraction prerequisites the text satisfies.
func ValidateContent(text string) schema.ReportContent {
	lower := strings.ToLower(text)

	content := schema.ReportContent{
		HasMeasurements: measurementRe.MatchString(lower),
	}

	if _, err := extractExamDate(text); err == nil {
		content.HasDate = true
	}
	content.HasLesions = len(extractLesionSizes(text)) > 0

	for _, kw := range medicalReportKeywords {
		if strings.Contains(lower, kw) {
			content.IsMedicalReport = true
			break
		}
	}
	return content
}

// extractExamDate finds and standardizes the exam date in report text.
func extractExamDate(text string) (time.Time, error) {
	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, err := contract.ParseExamDate(m[1]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoExamDate
}

// lesionMention is an intermediate parse of one lesion size mention.
type lesionMention struct {
	id     string
	sizeCM float64
}

// extractLesionSizes finds all lesion size mentions, normalizing units to
// centimeters and deduplicating by identifier (first mention wins).
func extractLesionSizes(text string) []lesionMention {
	var mentions []lesionMention

	for _, pattern := range lesionPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if mention, ok := parseMention(m[1], m[2], m[3]); ok {
				mentions = append(mentions, mention)
			}
		}
	}

	// Generic fallback only when no typed mention matched, so that typed
	// names are not re-captured with partial identifiers.
	if len(mentions) == 0 {
		for _, m := range genericLesionPattern.FindAllStringSubmatch(text, -1) {
			if mention, ok := parseMention(m[1], m[2], m[3]); ok {
				mentions = append(mentions, mention)
			}
		}
	}

	// Deduplicate by cleaned identifier, preserving order.
	seen := make(map[string]struct{}, len(mentions))
	deduped := mentions[:0]
	for _, m := range mentions {
		if _, dup := seen[m.id]; dup {
			continue
		}
		seen[m.id] = struct{}{}
		deduped = append(deduped, m)
	}
	return deduped
}

// parseMention converts the raw captures of a lesion pattern into a mention.
func parseMention(rawID, rawSize, unit string) (lesionMention, bool) {
	size, err := contract.ParseFlexibleFloat(rawSize)
	if err != nil || size <= 0 {
		return lesionMention{}, false
	}
	if strings.EqualFold(unit, "mm") {
		size = math.Round(size/10.0*100) / 100
	}
	return lesionMention{
		id:     schema.CleanLesionID(rawID),
		sizeCM: size,
	}, true
}

// DescribeContent renders a short human-readable summary of validation
// signals, used by the extract command on failure.
func DescribeContent(content schema.ReportContent) string {
	var missing []string
	if !content.HasDate {
		missing = append(missing, "data do exame")
	}
	if !content.HasLesions {
		missing = append(missing, "menções a lesões")
	}
	if !content.HasMeasurements {
		missing = append(missing, "medições numéricas")
	}
	if len(missing) == 0 {
		return "conteúdo completo"
	}
	return fmt.Sprintf("faltando: %s", strings.Join(missing, ", "))
}
