package comments

import (
	"encoding/json"
	"reflect"
	"testing"
)

func testThread() *Thread {
	t := NewThread()
	t.Replace([]*Comment{
		{ID: "c1", PostID: "p1", Content: "first", Likes: []string{}, Replies: []*Comment{}},
		{ID: "c2", PostID: "p1", Content: "second", Likes: []string{"u1"},
			Replies: []*Comment{{ID: "r1", PostID: "p1", Content: "nested"}}},
	})
	return t
}

func TestAddAndDelete(t *testing.T) {
	th := testThread()

	th.Add(&Comment{ID: "c3", PostID: "p1", Content: "third"})
	if th.Len() != 3 {
		t.Fatalf("expected 3 comments, got %d", th.Len())
	}

	if !th.Delete("c3") {
		t.Fatalf("expected delete to find c3")
	}
	if th.Len() != 2 {
		t.Fatalf("expected 2 comments, got %d", th.Len())
	}
	if th.Delete("c3") {
		t.Fatalf("expected second delete to miss")
	}
}

func TestDeleteNestedReply(t *testing.T) {
	th := testThread()

	if !th.Delete("r1") {
		t.Fatalf("expected delete to find the nested reply")
	}
	if len(th.Comments()[1].Replies) != 0 {
		t.Fatalf("expected reply removed")
	}
}

func TestAddReply(t *testing.T) {
	th := testThread()

	ok := th.AddReply("c1", &Comment{ID: "r2", Content: "a reply"})
	if !ok {
		t.Fatalf("expected AddReply to find c1")
	}
	if len(th.Comments()[0].Replies) != 1 {
		t.Fatalf("expected one reply on c1")
	}

	if th.AddReply("missing", &Comment{ID: "r3"}) {
		t.Fatalf("expected AddReply to miss an unknown parent")
	}
}

func TestUpdateLikes(t *testing.T) {
	th := testThread()

	if !th.UpdateLikes("c2", []string{"u1", "u2"}) {
		t.Fatalf("expected UpdateLikes to find c2")
	}
	if !reflect.DeepEqual(th.Comments()[1].Likes, []string{"u1", "u2"}) {
		t.Fatalf("like set not replaced: %v", th.Comments()[1].Likes)
	}

	if !th.UpdateLikes("r1", []string{"u3"}) {
		t.Fatalf("expected UpdateLikes to reach a nested reply")
	}
	if !reflect.DeepEqual(th.Comments()[1].Replies[0].Likes, []string{"u3"}) {
		t.Fatalf("reply like set not replaced")
	}
}

func TestUnmarshalAliases(t *testing.T) {
	raw := `{"_id": "c9", "postId": "p7", "content": "hello", "author": {"_id": "u1", "full_name": "Alice Chen"}}`

	c := &Comment{}
	err := json.Unmarshal([]byte(raw), c)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if c.ID != "c9" || c.PostID != "p7" {
		t.Fatalf("alias ids not resolved: %+v", c)
	}
	if c.Author.ID != "u1" || c.Author.Name != "Alice Chen" {
		t.Fatalf("author ref not resolved: %+v", c.Author)
	}
	if c.Likes == nil || c.Replies == nil {
		t.Fatalf("expected non-nil likes and replies")
	}
}
