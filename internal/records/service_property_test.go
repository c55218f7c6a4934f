package records

import (
	"context"
	"testing"

	"github.com/gramsehat/backend/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Record list and prescriptions counter move together: +1 per upload, -1 per delete clamped at zero
func TestProperty_UploadDeleteConsistency(t *testing.T) {
	properties := gopter.NewProperties(nil)

	picker := ResultPicker{
		PermissionGranted: true,
		Result:            PickResult{Asset: &Asset{URI: "file:///doc.pdf", MimeType: "application/pdf"}},
	}

	properties.Property("counters follow record mutations", prop.ForAll(
		func(start int, ops []int) bool {
			ctx := context.Background()
			svc := newTestService()
			svc.stats[1] = model.MemberStats{Prescriptions: start}

			count := len(svc.Records(1))
			prescriptions := start

			for _, op := range ops {
				if op%3 == 0 {
					if _, err := svc.Upload(ctx, 1, picker, SourceDocument); err != nil {
						return false
					}
					count++
					prescriptions++
				} else {
					records := svc.Records(1)
					if len(records) == 0 {
						if svc.Delete(ctx, 1, 12345) == nil {
							return false
						}
						continue
					}
					target := records[op%len(records)].ID
					if err := svc.Delete(ctx, 1, target); err != nil {
						return false
					}
					for _, r := range svc.Records(1) {
						if r.ID == target {
							return false
						}
					}
					count--
					if prescriptions > 0 {
						prescriptions--
					}
				}

				if len(svc.Records(1)) != count || svc.Stats(1).Prescriptions != prescriptions {
					return false
				}
				if svc.Stats(1).Prescriptions < 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 3),
		gen.SliceOf(gen.IntRange(0, 20)),
	))

	properties.TestingRun(t)
}
