package posts

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalNormalizesIDs(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"id": "p1", "title": "t"}`, "p1"},
		{`{"_id": "p2", "title": "t"}`, "p2"},
		{`{"id": "p3", "_id": "p3", "title": "t"}`, "p3"},
	}

	for i, c := range cases {
		p := &Post{}
		err := json.Unmarshal([]byte(c.raw), p)
		if err != nil {
			t.Fatalf("case %d: unexpected error %v", i, err)
		}

		if p.ID != c.want || p.LegacyID != c.want {
			t.Fatalf("case %d: expected both ids %q, got id=%q legacy=%q", i, c.want, p.ID, p.LegacyID)
		}
	}
}

func TestUnmarshalDerivesCommentsCount(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"id": "p1", "commentsCount": 7}`, 7},
		{`{"id": "p2", "comments": [{"id": "c1"}, {"id": "c2"}]}`, 2},
		{`{"id": "p3"}`, 0},
		{`{"id": "p4", "commentsCount": 0, "comments": [{"id": "c1"}]}`, 0},
	}

	for i, c := range cases {
		p := &Post{}
		err := json.Unmarshal([]byte(c.raw), p)
		if err != nil {
			t.Fatalf("case %d: unexpected error %v", i, err)
		}

		if p.CommentsCount != c.want {
			t.Fatalf("case %d: expected count %d, got %d", i, c.want, p.CommentsCount)
		}
	}
}

func TestUnmarshalSetsAreNonNil(t *testing.T) {
	p := &Post{}
	err := json.Unmarshal([]byte(`{"id": "p1"}`), p)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if p.Likes == nil || p.Saves == nil {
		t.Fatalf("expected non-nil sets, got likes=%v saves=%v", p.Likes, p.Saves)
	}
}

func TestIsMatchesEitherID(t *testing.T) {
	p := &Post{ID: "canonical", LegacyID: "legacy"}

	if !p.Is("canonical") || !p.Is("legacy") {
		t.Fatalf("expected post to match both id spellings")
	}
	if p.Is("") || p.Is("other") {
		t.Fatalf("expected no match for empty or foreign id")
	}
}

func TestLikedSavedBy(t *testing.T) {
	p := &Post{Likes: []string{"u1"}, Saves: []string{"u2"}}

	if !p.LikedBy("u1") || p.LikedBy("u2") {
		t.Fatalf("wrong like membership")
	}
	if !p.SavedBy("u2") || p.SavedBy("u1") {
		t.Fatalf("wrong save membership")
	}
}
