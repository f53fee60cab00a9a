package filter

import (
	"testing"
	"time"

	"github.com/harperreed/crmview/datewindow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activity struct {
	kind        string
	description string
	contact     string
	date        time.Time
	due         *time.Time
}

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func sample() []activity {
	return []activity{
		{kind: "call", description: "Intro call", contact: "Ada Lovelace", date: now.Add(-time.Hour)},
		{kind: "email", description: "Sent pricing", contact: "Grace Hopper", date: now.AddDate(0, 0, -1)},
		{kind: "call", description: "Follow-up", contact: "Grace Hopper", date: now.AddDate(0, 0, -9)},
		{kind: "meeting", description: "Demo", contact: "Ünal Özdemir", date: now.Add(2 * time.Hour)},
	}
}

func textSpec(q string) TextSpec[activity] {
	return Text(q,
		func(a activity) string { return a.description },
		func(a activity) string { return a.contact },
	)
}

func kindSpec(k string) EqualsSpec[activity, string] {
	return Equals(k, "all", func(a activity) string { return a.kind })
}

func dateSpec(tok datewindow.Token) WindowSpec[activity] {
	return InWindow(datewindow.For(tok, now), func(a activity) (time.Time, bool) { return a.date, true })
}

func TestTextSearchAnyField(t *testing.T) {
	got := Apply(sample(), textSpec("GRACE"))
	assert.Len(t, got, 2)

	got = Apply(sample(), textSpec("demo"))
	require.Len(t, got, 1)
	assert.Equal(t, "meeting", got[0].kind)

	got = Apply(sample(), textSpec("özdemir"))
	assert.Len(t, got, 1, "case folding covers non-ASCII letters")
}

func TestEmptyQueryPasses(t *testing.T) {
	assert.Len(t, Apply(sample(), textSpec("")), 4)
	assert.Len(t, Apply(sample(), textSpec("   ")), 4)
}

func TestCategoricalSentinel(t *testing.T) {
	assert.Len(t, Apply(sample(), kindSpec("all")), 4)
	assert.Len(t, Apply(sample(), kindSpec("")), 4)
	assert.Len(t, Apply(sample(), kindSpec("call")), 2)
	assert.Empty(t, Apply(sample(), kindSpec("note")))
}

func TestDateWindow(t *testing.T) {
	assert.Len(t, Apply(sample(), dateSpec(datewindow.Today)), 2)
	assert.Len(t, Apply(sample(), dateSpec(datewindow.Yesterday)), 1)
	assert.Len(t, Apply(sample(), dateSpec(datewindow.All)), 4)
	assert.Len(t, Apply(sample(), dateSpec("someday")), 4)
}

func TestMissingDateFailsBoundedWindow(t *testing.T) {
	due := now
	items := []activity{{description: "with"}, {description: "without"}}
	items[0].due = &due

	spec := InWindow(datewindow.For(datewindow.Today, now), func(a activity) (time.Time, bool) {
		if a.due == nil {
			return time.Time{}, false
		}
		return *a.due, true
	})

	got := Apply(items, spec)
	require.Len(t, got, 1)
	assert.Equal(t, "with", got[0].description)
}

func TestComposedSpecsAreSubsetAndIdempotent(t *testing.T) {
	items := sample()
	specs := []Spec[activity]{
		dateSpec(datewindow.ThisWeek),
		kindSpec("call"),
		textSpec("call"),
	}

	once := Apply(items, specs...)
	require.Len(t, once, 1)
	assert.Equal(t, "Intro call", once[0].description)

	for _, item := range once {
		assert.Contains(t, items, item)
	}
	assert.Equal(t, once, Apply(once, specs...))
}

func TestOrderIndependentResult(t *testing.T) {
	a := Apply(sample(), textSpec("grace"), kindSpec("call"))
	b := Apply(sample(), kindSpec("call"), textSpec("grace"))
	assert.Equal(t, a, b)
}

func TestStagesRunSearchCategoryDate(t *testing.T) {
	var calls []Stage
	record := func(stage Stage) Spec[activity] {
		return recordingSpec{stage: stage, calls: &calls}
	}

	Apply([]activity{{}}, record(StageDate), record(StageSearch), record(StageCategory))
	assert.Equal(t, []Stage{StageSearch, StageCategory, StageDate}, calls)
}

type recordingSpec struct {
	stage Stage
	calls *[]Stage
}

func (s recordingSpec) Stage() Stage { return s.stage }
func (s recordingSpec) Active() bool { return true }
func (s recordingSpec) Match(activity) bool {
	*s.calls = append(*s.calls, s.stage)
	return true
}

func TestWhere(t *testing.T) {
	calls := Where(func(a activity) bool { return a.kind == "call" })
	assert.Len(t, Apply(sample(), calls), 2)

	inactive := Where[activity](nil)
	assert.Len(t, Apply(sample(), inactive), 4)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := sample()
	_ = Apply(items, kindSpec("meeting"))
	assert.Equal(t, sample(), items)
}
