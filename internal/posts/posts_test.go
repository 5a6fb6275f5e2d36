package posts

import (
	"errors"
	"slices"
	"testing"
)

func newPost(slug, date string, categories, tags []string) *Post[string] {
	return &Post[string]{
		URL: PostURL(date, slug),
		Frontmatter: Frontmatter{
			Title:      slug,
			PubDate:    date,
			Slug:       slug,
			Categories: categories,
			Tags:       tags,
		},
		Content: "body of " + slug,
	}
}

func slugs(ps []*Post[string]) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Frontmatter.Slug
	}
	return out
}

func TestPublished_DropsDrafts(t *testing.T) {
	draft := newPost("draft", "2024-05-01", nil, nil)
	draft.Frontmatter.Draft = true
	docs := []*Post[string]{
		newPost("a", "2024-01-01", nil, nil),
		draft,
		nil,
		newPost("b", "2024-02-01", nil, nil),
	}

	got := Published(docs)
	for _, p := range got {
		if p.Frontmatter.Draft {
			t.Fatalf("draft %q survived filtering", p.Frontmatter.Slug)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 published posts, got %d (%v)", len(got), slugs(got))
	}
}

func TestPublished_SortsNewestFirstUndatedLast(t *testing.T) {
	docs := []*Post[string]{
		newPost("bad", "not a date", nil, nil),
		newPost("old", "2023-12-31", nil, nil),
		newPost("missing", "", nil, nil),
		newPost("new", "2024-03-05T10:00:00Z", nil, nil),
		newPost("mid", "2024-03-05", nil, nil),
	}

	got := slugs(Published(docs))
	want := []string{"new", "mid", "old", "bad", "missing"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestPublished_AdjacentDatesNonIncreasing(t *testing.T) {
	docs := []*Post[string]{
		newPost("a", "2022-06-01", nil, nil),
		newPost("b", "2024-01-15", nil, nil),
		newPost("c", "2023-03-03", nil, nil),
		newPost("d", "2024-01-15", nil, nil),
		newPost("e", "2021-11-30", nil, nil),
	}
	got := Published(docs)
	for i := 1; i < len(got); i++ {
		prev, _ := got[i-1].Date()
		cur, _ := got[i].Date()
		if cur.After(prev) {
			t.Fatalf("post %d (%s) is newer than post %d (%s)", i, cur, i-1, prev)
		}
	}
	// Equal dates keep input order.
	if got[0].Frontmatter.Slug != "b" || got[1].Frontmatter.Slug != "d" {
		t.Fatalf("tie order = %v, want b before d", slugs(got[:2]))
	}
}

func TestLoad(t *testing.T) {
	src := SourceFunc[string](func() ([]*Post[string], error) {
		return []*Post[string]{
			newPost("a", "2024-01-01", nil, nil),
			newPost("b", "2024-02-01", nil, nil),
		}, nil
	})
	got, err := Load[string](src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(slugs(got), []string{"b", "a"}) {
		t.Fatalf("Load order = %v", slugs(got))
	}
}

func TestLoad_SourceError(t *testing.T) {
	boom := errors.New("boom")
	src := SourceFunc[string](func() ([]*Post[string], error) { return nil, boom })
	if _, err := Load[string](src); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if _, err := Load[string](nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}

func TestByYearAndMonth(t *testing.T) {
	ps := []*Post[string]{
		newPost("a", "2024-03-05", nil, nil),
		newPost("b", "2024-01-20", nil, nil),
		newPost("c", "2023-12-01", nil, nil),
		newPost("d", "garbage", nil, nil),
		newPost("e", "2024-03-01", nil, nil),
	}

	years := ByYear(ps)
	if got := slugs(years["2024"]); !slices.Equal(got, []string{"a", "b", "e"}) {
		t.Errorf("2024 = %v", got)
	}
	if got := slugs(years["2023"]); !slices.Equal(got, []string{"c"}) {
		t.Errorf("2023 = %v", got)
	}
	if got := slugs(years[UndatedKey]); !slices.Equal(got, []string{"d"}) {
		t.Errorf("undated = %v", got)
	}

	months := ByMonth(ps)
	if got := slugs(months["2024-03"]); !slices.Equal(got, []string{"a", "e"}) {
		t.Errorf("2024-03 = %v", got)
	}
	if got := slugs(months["2024-01"]); !slices.Equal(got, []string{"b"}) {
		t.Errorf("2024-01 = %v", got)
	}

	keys := SortedKeys(months)
	want := []string{"2024-03", "2024-01", "2023-12", UndatedKey}
	if !slices.Equal(keys, want) {
		t.Errorf("SortedKeys = %v, want %v", keys, want)
	}
}

func TestAllTags_DedupSort(t *testing.T) {
	ps := []*Post[string]{
		newPost("x", "2024-01-01", nil, []string{"b", "a"}),
		newPost("y", "2024-01-02", nil, []string{"a"}),
		newPost("z", "2024-01-03", nil, []string{"", "c"}),
		newPost("w", "2024-01-04", nil, nil),
	}
	got := AllTags(ps)
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("AllTags = %v", got)
	}
	if got := AllTags(ps[:2]); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("AllTags = %v, want [a b]", got)
	}
}

func TestAllCategoriesAndCounts(t *testing.T) {
	ps := []*Post[string]{
		newPost("a", "2024-01-01", []string{"Tech", "Go"}, nil),
		newPost("b", "2024-01-02", []string{"Tech"}, nil),
		newPost("c", "2024-01-03", []string{"Life"}, nil),
		newPost("d", "2024-01-04", nil, nil),
	}
	got := AllCategories(ps)
	want := []string{"Life", "Tech", "Tech/Go"}
	if !slices.Equal(got, want) {
		t.Fatalf("AllCategories = %v, want %v", got, want)
	}

	counts := CategoryCounts(ps)
	if counts["Tech"] != 2 || counts["Tech/Go"] != 1 || counts["Life"] != 1 {
		t.Fatalf("CategoryCounts = %v", counts)
	}
}

func TestEmptyInput(t *testing.T) {
	var empty []*Post[string]

	if got := Published(empty); len(got) != 0 {
		t.Errorf("Published = %v", got)
	}
	if got := ByYear(empty); got == nil || len(got) != 0 {
		t.Errorf("ByYear = %v", got)
	}
	if got := ByMonth(empty); got == nil || len(got) != 0 {
		t.Errorf("ByMonth = %v", got)
	}
	if got := AllTags(empty); got == nil || len(got) != 0 {
		t.Errorf("AllTags = %v", got)
	}
	if got := AllCategories(empty); got == nil || len(got) != 0 {
		t.Errorf("AllCategories = %v", got)
	}
	if got := ByCategory(empty, "Tech"); got == nil || len(got) != 0 {
		t.Errorf("ByCategory = %v", got)
	}
	if got := ByTag(empty, "go"); got == nil || len(got) != 0 {
		t.Errorf("ByTag = %v", got)
	}
	tree := BuildCategoryTree(empty)
	if roots := tree.Roots(); len(roots) != 0 {
		t.Errorf("Roots = %v", roots)
	}
	if n := tree.Find("Tech"); n != nil {
		t.Errorf("Find on empty tree = %v", n)
	}
}
