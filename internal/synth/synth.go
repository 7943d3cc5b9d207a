// Package synth generates demonstration measurement datasets.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// lesionTypes cycle through the clinical identifier forms the resolver
// recognizes, so demo output exercises the same naming conventions as
// real reports.
var lesionTypes = []string{"Lesão", "Nódulo", "Metástase", "Tumor", "Massa"}

// growthPattern controls how a synthetic lesion evolves across exams.
type growthPattern int

const (
	patternGrowing growthPattern = iota
	patternShrinking
	patternStable
	patternFluctuating
)

// DemoRecords returns the measurement set for the demo command.
//
// With default parameters and no explicit seed it returns a small curated
// dataset whose numbers are easy to follow in the output tables. Any
// non-default parameter switches to seeded synthetic generation.
func DemoRecords(cfg *contract.Config) []schema.Measurement {
	if cfg.DemoSeed == 0 &&
		cfg.DemoExams == contract.DefaultDemoExams &&
		cfg.DemoLesions == contract.DefaultDemoLesions {
		return curatedRecords()
	}

	seed := cfg.DemoSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return GenerateRecords(cfg.DemoLesions, cfg.DemoExams, seed)
}

// curatedRecords is the fixed showcase dataset. Metástase C deliberately
// misses the last exam to show how uneven follow-up appears in reports.
func curatedRecords() []schema.Measurement {
	dates := []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC),
	}

	records := []schema.Measurement{
		{LesionID: "Lesão A", ExamDate: dates[0], SizeCM: 1.2},
		{LesionID: "Lesão A", ExamDate: dates[1], SizeCM: 1.5},
		{LesionID: "Lesão A", ExamDate: dates[2], SizeCM: 1.8},
		{LesionID: "Lesão A", ExamDate: dates[3], SizeCM: 1.1, Treatments: []string{"Cirurgia"}},

		{LesionID: "Nódulo B", ExamDate: dates[0], SizeCM: 0.8},
		{LesionID: "Nódulo B", ExamDate: dates[1], SizeCM: 0.9},
		{LesionID: "Nódulo B", ExamDate: dates[2], SizeCM: 0.7, Treatments: []string{"Quimioterapia"}},
		{LesionID: "Nódulo B", ExamDate: dates[3], SizeCM: 0.5},

		{LesionID: "Metástase C", ExamDate: dates[0], SizeCM: 2.1},
		{LesionID: "Metástase C", ExamDate: dates[1], SizeCM: 2.8},
		{LesionID: "Metástase C", ExamDate: dates[2], SizeCM: 1.9, Treatments: []string{"Radioterapia"}},
	}
	for i := range records {
		records[i].SourceFile = "demo"
	}
	return records
}

// GenerateRecords builds a synthetic dataset with the given dimensions.
// The same seed always produces the same dataset.
func GenerateRecords(lesions, exams int, seed int64) []schema.Measurement {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	records := make([]schema.Measurement, 0, lesions*exams)
	for i := 0; i < lesions; i++ {
		name := lesionName(i)
		pattern := growthPattern(i % 4)
		size := 0.5 + rng.Float64()*2.5
		current := start

		for j := 0; j < exams; j++ {
			records = append(records, schema.Measurement{
				LesionID:   name,
				ExamDate:   current,
				SizeCM:     roundSize(size),
				SourceFile: "demo",
			})
			size = nextSize(size, pattern, rng)
			// Exams roughly every six to ten weeks
			current = current.AddDate(0, 0, 42+rng.Intn(29))
		}
	}
	return records
}

// lesionName produces "Lesão A", "Nódulo B", ... cycling through types
// and letters, with a numeric suffix once the alphabet wraps.
func lesionName(i int) string {
	kind := lesionTypes[i%len(lesionTypes)]
	letter := rune('A' + i%26)
	if i < 26 {
		return fmt.Sprintf("%s %c", kind, letter)
	}
	return fmt.Sprintf("%s %c%d", kind, letter, i/26+1)
}

func nextSize(size float64, pattern growthPattern, rng *rand.Rand) float64 {
	var factor float64
	switch pattern {
	case patternGrowing:
		factor = 1.05 + rng.Float64()*0.15
	case patternShrinking:
		factor = 0.80 + rng.Float64()*0.15
	case patternStable:
		factor = 0.98 + rng.Float64()*0.04
	default:
		factor = 0.80 + rng.Float64()*0.45
	}
	next := size * factor
	if next < 0.1 {
		next = 0.1
	}
	return next
}

func roundSize(size float64) float64 {
	return math.Round(size*100) / 100
}
