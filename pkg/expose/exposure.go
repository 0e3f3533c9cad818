package expose

import "github.com/kieroneil/ruler/pkg/rules"

// Exposure is the bundle produced by applying packs to data: one PackInfo
// per pack in invocation order, plus the flattened report across all
// packs. An Exposure is immutable once produced; merging builds a new one.
type Exposure struct {
	PacksInfo []rules.PackInfo  `json:"packs_info"`
	Report    []rules.ReportRow `json:"report"`
}

// Merge concatenates two exposures, preserving relative order: prev's
// entries first, then next's. Same-named packs from different calls remain
// distinct entries. Either argument may be nil.
func Merge(prev, next *Exposure) *Exposure {
	if prev == nil && next == nil {
		return nil
	}
	merged := &Exposure{}
	if prev != nil {
		merged.PacksInfo = append(merged.PacksInfo, prev.PacksInfo...)
		merged.Report = append(merged.Report, prev.Report...)
	}
	if next != nil {
		merged.PacksInfo = append(merged.PacksInfo, next.PacksInfo...)
		merged.Report = append(merged.Report, next.Report...)
	}
	return merged
}

// Exposure returns the attached exposure, or rules.ErrNoExposure when the
// data has not been exposed yet.
func (ex *Exposed) Exposure() (*Exposure, error) {
	if ex.exposure == nil {
		return nil, rules.ErrNoExposure
	}
	return ex.exposure, nil
}

// PacksInfo returns the attached exposure's per-pack metadata.
func (ex *Exposed) PacksInfo() ([]rules.PackInfo, error) {
	e, err := ex.Exposure()
	if err != nil {
		return nil, err
	}
	return e.PacksInfo, nil
}

// Report returns the attached exposure's report rows.
func (ex *Exposed) Report() ([]rules.ReportRow, error) {
	e, err := ex.Exposure()
	if err != nil {
		return nil, err
	}
	return e.Report, nil
}
