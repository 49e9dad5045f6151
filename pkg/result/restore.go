package result

import (
	"slices"

	"github.com/geofeed/validator/pkg/field"
)

// RecordParts holds the data of a Record rebuilt from a serialized report.
type RecordParts struct {
	No          int
	Raw         string
	Ignored     bool
	Fields      []FieldResult
	Extra       []string
	ExtraOffset int
}

// Restore rebuilds a ValidationResult from serialized parts. Record numbers
// are taken as given.
func Restore(fields []*field.Field, storeRaw bool, parts []RecordParts) *ValidationResult {
	vr := &ValidationResult{
		fields:   slices.Clone(fields),
		storeRaw: storeRaw,
		records:  make([]*Record, len(parts)),
	}
	for i, p := range parts {
		r := &Record{
			no:          p.No,
			raw:         p.Raw,
			ignored:     p.Ignored,
			extra:       slices.Clone(p.Extra),
			extraOffset: p.ExtraOffset,
		}
		if !storeRaw {
			r.raw = ""
		}
		if len(p.Fields) > 0 {
			r.fields = make([]FieldResult, len(p.Fields))
			for j := range p.Fields {
				r.fields[j] = p.Fields[j].clone()
				r.errors += len(p.Fields[j].Errors)
				r.warnings += len(p.Fields[j].Warnings)
			}
		}
		vr.records[i] = r
		vr.errors += r.errors
		vr.warnings += r.warnings
	}
	return vr
}
