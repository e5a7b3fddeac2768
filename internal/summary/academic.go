package summary

import (
	"context"
	"time"

	"foca/internal/aggregate"
	"foca/internal/database"
	"foca/internal/model"
)

type AcademicSummary struct {
	Total         int                  `json:"total"`
	Breakdown     []aggregate.Slice    `json:"breakdown"`
	Series        []aggregate.Bucket   `json:"series"`
	StudySessions int                  `json:"study_sessions"`
	Exams         int                  `json:"exams"`
	Items         []model.AcademicItem `json:"items"`
}

func (s AcademicSummary) Empty() bool {
	return len(s.Items) == 0
}

type Academic struct {
	store database.AcademicStore
	clock
}

func NewAcademic(store database.AcademicStore, loc *time.Location) *Academic {
	return &Academic{store: store, clock: newClock(loc)}
}

func (a *Academic) Summarize(ctx context.Context, s *model.Session, r model.DateRange) (AcademicSummary, error) {
	if !s.Resolved() {
		return AcademicSummary{}, ErrNoSession
	}

	from, to := r.Bounds(a.loc)
	rows, err := a.store.ListAcademic(ctx, s.UserID(), from, to)
	if err != nil {
		return AcademicSummary{}, err
	}

	res := aggregate.Reduce(rows, aggregate.Spec[model.AcademicItem]{
		Group:    func(it model.AcademicItem) string { return string(it.Tag) },
		Label:    func(k string) string { return model.AcademicTag(k).Label() },
		Day:      func(it model.AcademicItem) time.Time { return it.CreatedAt },
		Location: a.loc,
	})

	tagged := func(t model.AcademicTag) func(model.AcademicItem) bool {
		return func(it model.AcademicItem) bool { return it.Tag == t }
	}

	return AcademicSummary{
		Total:         int(res.Total.IntPart()),
		Breakdown:     res.Breakdown,
		Series:        res.Series,
		StudySessions: aggregate.Count(rows, tagged(model.Study)),
		Exams:         aggregate.Count(rows, tagged(model.Exam)),
		Items:         rows,
	}, nil
}
