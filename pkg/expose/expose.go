package expose

import (
	"fmt"

	"github.com/kieroneil/ruler/pkg/frame"
	"github.com/kieroneil/ruler/pkg/rules"
)

// Expose applies packs to the wrapped data, strictly in the given order,
// and returns a new Exposed value with the resulting exposure attached.
// The wrapped frame is returned untouched; only the exposure differs.
//
// A failing pack never aborts the run: its failure is recorded in the
// pack's PackInfo and it contributes no report rows. Expose itself fails
// only for malformed configuration (NoGuess with an undeclared pack type,
// an invalid pack) or inconsistent row-key state.
//
// If the data already carries an exposure, the new packs_info and report
// are appended after the existing ones.
func Expose(ex *Exposed, packs []rules.Pack, opts ...Option) (*Exposed, error) {
	if ex == nil || ex.frame == nil {
		return nil, fmt.Errorf("nothing to expose: nil data")
	}
	o := buildOptions(opts)

	// Configuration-level validation happens before any pack runs: no
	// per-pack isolation is possible when no safe classification exists.
	for _, p := range packs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !o.guess && p.Type == rules.TypeUnknown && len(p.GroupVars) == 0 {
			return nil, &rules.AmbiguousPackTypeError{
				Pack:   p.Name,
				Reason: "guessing disabled and no type declared",
			}
		}
	}

	keyed, err := ex.keyed()
	if err != nil {
		return nil, err
	}

	contribution := &Exposure{}
	for i, p := range packs {
		info, report := runPack(keyed, p, i, o)
		contribution.PacksInfo = append(contribution.PacksInfo, info)
		contribution.Report = append(contribution.Report, report...)
	}

	if o.removeObeyers {
		breakers := contribution.Report[:0:0]
		for _, r := range contribution.Report {
			if r.Verdict {
				breakers = append(breakers, r)
			}
		}
		contribution.Report = breakers
	}

	o.logger.Info("exposure complete",
		"packs", len(contribution.PacksInfo), "report_rows", len(contribution.Report))

	return &Exposed{
		frame:    ex.frame,
		keys:     ex.keys,
		exposure: Merge(ex.exposure, contribution),
	}, nil
}

// runPack executes one pack against the keyed data and normalizes its
// result. Failures are captured in the returned PackInfo, never escalated.
func runPack(keyed *frame.Frame, p rules.Pack, idx int, o options) (rules.PackInfo, []rules.ReportRow) {
	res, err := callPack(p, keyed)
	if err != nil {
		o.logger.Warn("pack failed", "pack", packName(p, p.Type, idx), "error", err)
		return failInfo(p, p.Type, idx, err), nil
	}

	typ, err := rules.Classify(res, p, o.sep, o.guess)
	if err != nil {
		o.logger.Warn("pack classification failed", "pack", packName(p, p.Type, idx), "error", err)
		return failInfo(p, p.Type, idx, err), nil
	}

	name := packName(p, typ, idx)
	report, warning, err := normalize(res, typ, name, p.GroupVars, o.sep)
	if err != nil {
		o.logger.Warn("pack normalization failed", "pack", name, "type", typ, "error", err)
		info := failInfo(p, typ, idx, err)
		return info, nil
	}

	o.logger.Debug("pack executed", "pack", name, "type", typ, "report_rows", len(report))
	return rules.PackInfo{Name: name, Type: typ, OK: true, Warning: warning}, report
}

// callPack invokes the pack body on its own copy of the data, converting
// panics and errors into PackExecutionError.
func callPack(p rules.Pack, keyed *frame.Frame) (res *frame.Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &rules.PackExecutionError{Pack: p.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	res, err = p.Fn(keyed.Clone())
	if err != nil {
		return nil, &rules.PackExecutionError{Pack: p.Name, Err: err}
	}
	if res == nil {
		return nil, &rules.PackExecutionError{Pack: p.Name, Err: fmt.Errorf("pack returned no result")}
	}
	return res, nil
}

// packName resolves a pack's report name, generating "<type>..<index>"
// when the caller did not name the pack.
func packName(p rules.Pack, typ rules.PackType, idx int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%s..%d", typ, idx+1)
}

func failInfo(p rules.Pack, typ rules.PackType, idx int, err error) rules.PackInfo {
	return rules.PackInfo{
		Name:  packName(p, typ, idx),
		Type:  typ,
		OK:    false,
		Error: err.Error(),
	}
}
