package posts

import (
	"reflect"
	"testing"

	"campusclone/pkg/user"
)

func testPosts() []*Post {
	return []*Post{
		{ID: "p1", Title: "React Hooks Complete Guide", Content: "hooks from scratch",
			Category: Threads, Author: user.Ref{ID: "u1", Name: "Alice Chen"}},
		{ID: "p2", Title: "Summer Internship Opportunities", Content: "hiring interns",
			Category: Jobs, Author: user.Ref{ID: "u2", Name: "Bob Reyes"}},
		{LegacyID: "p3", Title: "Algorithms Midterm Notes", Content: "sorting and graphs",
			Category: Notes, Author: user.Ref{ID: "u3", Name: "Carol Diaz"}},
	}
}

func newLoadedStore() *Store {
	s := NewStore()
	s.LoadPosts(testPosts())
	return s
}

func titles(list []*Post) []string {
	res := make([]string, 0, len(list))
	for _, p := range list {
		res = append(res, p.Title)
	}
	return res
}

func TestLoadPostsNormalizes(t *testing.T) {
	s := newLoadedStore()

	for _, p := range s.Posts() {
		if p.ID == "" || p.ID != p.LegacyID {
			t.Fatalf("post %q not normalized: id=%q legacy=%q", p.Title, p.ID, p.LegacyID)
		}
	}

	if len(s.Filtered()) != 3 {
		t.Fatalf("expected derived view to equal canonical after load, got %d", len(s.Filtered()))
	}
}

func TestFilterByCategory(t *testing.T) {
	s := newLoadedStore()

	s.SetFilter("", Jobs)
	s.RecomputeFilter()

	want := []string{"Summer Internship Opportunities"}
	if !reflect.DeepEqual(titles(s.Filtered()), want) {
		t.Fatalf("expected %v, got %v", want, titles(s.Filtered()))
	}
}

func TestFilterByQueryCaseInsensitive(t *testing.T) {
	s := newLoadedStore()

	s.SetFilter("react", All)
	s.RecomputeFilter()

	got := titles(s.Filtered())
	if !reflect.DeepEqual(got, []string{"React Hooks Complete Guide"}) {
		t.Fatalf("expected only the react post, got %v", got)
	}
}

func TestFilterMatchesAuthorName(t *testing.T) {
	s := newLoadedStore()

	s.SetFilter("carol", All)
	s.RecomputeFilter()

	got := titles(s.Filtered())
	if !reflect.DeepEqual(got, []string{"Algorithms Midterm Notes"}) {
		t.Fatalf("expected the post by Carol, got %v", got)
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	s := newLoadedStore()

	s.SetFilter("react", Jobs)
	s.RecomputeFilter()

	if len(s.Filtered()) != 0 {
		t.Fatalf("expected empty view for jobs+react, got %v", titles(s.Filtered()))
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	s := newLoadedStore()

	s.SetFilter("notes", All)
	s.RecomputeFilter()
	first := titles(s.Filtered())
	s.RecomputeFilter()
	second := titles(s.Filtered())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recompute not idempotent: %v then %v", first, second)
	}
}

func TestCreatePostPrependsWithoutRecompute(t *testing.T) {
	s := newLoadedStore()

	s.SetFilter("", Jobs)
	s.RecomputeFilter()

	s.CreatePost(&Post{ID: "p4", Title: "Study Group", Category: Threads})

	if s.Posts()[0].ID != "p4" {
		t.Fatalf("expected new post first in canonical collection")
	}
	// intentional staleness: the new threads post stays in the jobs view
	// until the next explicit recomputation
	if s.Filtered()[0].ID != "p4" {
		t.Fatalf("expected new post first in derived view")
	}

	s.RecomputeFilter()
	for _, p := range s.Filtered() {
		if p.ID == "p4" {
			t.Fatalf("expected recompute to drop the off-category post")
		}
	}
}

func TestUpdateLikesReplacesSet(t *testing.T) {
	s := newLoadedStore()

	s.UpdateLikes("p1", []string{"u1", "u2"})
	s.UpdateLikes("p1", []string{"u1"})

	got := s.Posts()[0].Likes
	if !reflect.DeepEqual(got, []string{"u1"}) {
		t.Fatalf("expected full replacement {u1}, got %v", got)
	}
}

func TestUpdateLikesReachesAllCopies(t *testing.T) {
	s := newLoadedStore()
	s.SetCurrentPost(s.Posts()[0])

	s.UpdateLikes("p1", []string{"u9"})

	if !reflect.DeepEqual(s.Posts()[0].Likes, []string{"u9"}) {
		t.Fatalf("canonical entry not updated")
	}
	if !reflect.DeepEqual(s.Filtered()[0].Likes, []string{"u9"}) {
		t.Fatalf("derived view not updated")
	}
	if !reflect.DeepEqual(s.Current().Likes, []string{"u9"}) {
		t.Fatalf("current copy not updated")
	}
}

func TestUpdateSavesReplacesSet(t *testing.T) {
	s := newLoadedStore()

	s.UpdateSaves("p2", []string{"u5", "u6"})
	s.UpdateSaves("p2", nil)

	got := s.Posts()[1].Saves
	if !reflect.DeepEqual(got, []string{}) {
		t.Fatalf("expected empty replacement, got %v", got)
	}
}

func TestCurrentPostIsValueCopy(t *testing.T) {
	s := newLoadedStore()
	s.SetCurrentPost(s.Posts()[0])

	s.Posts()[0].Title = "mutated directly"

	if s.Current().Title == "mutated directly" {
		t.Fatalf("current post shares memory with the canonical entry")
	}
}

func TestCommentCountRoundTrip(t *testing.T) {
	s := newLoadedStore()
	s.SetCurrentPost(s.Posts()[0])
	before := s.Posts()[0].CommentsCount

	s.AddComment("p1")
	s.DeleteComment("p1")

	if got := s.Posts()[0].CommentsCount; got != before {
		t.Fatalf("expected count back to %d, got %d", before, got)
	}
	if got := s.Current().CommentsCount; got != before {
		t.Fatalf("expected current copy count back to %d, got %d", before, got)
	}
}

func TestDeleteCommentFlooredAtZero(t *testing.T) {
	s := newLoadedStore()

	s.DeleteComment("p1")
	s.DeleteComment("p1")

	if got := s.Posts()[0].CommentsCount; got != 0 {
		t.Fatalf("expected count floored at 0, got %d", got)
	}
}

func TestCommentCountMatchesByLegacyID(t *testing.T) {
	s := newLoadedStore()

	s.AddComment("p3")

	if got := s.Posts()[2].CommentsCount; got != 1 {
		t.Fatalf("expected legacy-id match to bump count, got %d", got)
	}
}

func TestUpdatePostPatchesBothCopies(t *testing.T) {
	s := newLoadedStore()
	s.SetCurrentPost(s.Posts()[0])

	title := "React Hooks, Revised"
	s.UpdatePost("p1", &Patch{Title: &title})

	if s.Posts()[0].Title != title {
		t.Fatalf("canonical entry not patched")
	}
	if s.Current().Title != title {
		t.Fatalf("current copy not patched")
	}
	if s.Posts()[0].Content == "" {
		t.Fatalf("nil patch field must leave content untouched")
	}
}

func TestDeletePostClearsCurrent(t *testing.T) {
	s := newLoadedStore()
	s.SetCurrentPost(s.Posts()[1])

	s.DeletePost("p2")

	if len(s.Posts()) != 2 || len(s.Filtered()) != 2 {
		t.Fatalf("expected post removed from both collections")
	}
	if s.Current() != nil {
		t.Fatalf("expected current post cleared")
	}
}

func TestDeleteOtherPostKeepsCurrent(t *testing.T) {
	s := newLoadedStore()
	s.SetCurrentPost(s.Posts()[0])

	s.DeletePost("p2")

	if s.Current() == nil || !s.Current().Is("p1") {
		t.Fatalf("expected current post untouched")
	}
}

func TestLoadPostsLastWriteWins(t *testing.T) {
	s := newLoadedStore()

	s.LoadPosts([]*Post{{ID: "q1", Title: "Fresh", Category: Notes}})

	if len(s.Posts()) != 1 || s.Posts()[0].ID != "q1" {
		t.Fatalf("expected full replacement, got %v", titles(s.Posts()))
	}
}
