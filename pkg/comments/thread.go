package comments

// Thread is the post detail view's local comment list. It is fetched
// independently of the post collection: the global post entry only carries
// the aggregate commentsCount, and the two can diverge until the next fetch.
// A Thread belongs to a single mounted view, so it needs no locking.
type Thread struct {
	comments []*Comment
}

func NewThread() *Thread {
	return &Thread{comments: make([]*Comment, 0, 10)}
}

func (t *Thread) Replace(list []*Comment) {
	if list == nil {
		list = []*Comment{}
	}
	t.comments = list
}

func (t *Thread) Add(c *Comment) {
	t.comments = append(t.comments, c)
}

// AddReply appends to the named comment's reply sequence.
func (t *Thread) AddReply(parentID string, reply *Comment) bool {
	for _, c := range t.comments {
		if c.Is(parentID) {
			c.Replies = append(c.Replies, reply)
			return true
		}
	}

	return false
}

// Delete removes a comment by id, checking top-level entries first and then
// nested replies.
func (t *Thread) Delete(id string) bool {
	for i, c := range t.comments {
		if c.Is(id) {
			t.comments = append(t.comments[:i], t.comments[i+1:]...)
			return true
		}
	}

	for _, c := range t.comments {
		for i, r := range c.Replies {
			if r.Is(id) {
				c.Replies = append(c.Replies[:i], c.Replies[i+1:]...)
				return true
			}
		}
	}

	return false
}

// UpdateLikes replaces a comment's like set with the server response.
func (t *Thread) UpdateLikes(id string, likes []string) bool {
	if likes == nil {
		likes = []string{}
	}

	for _, c := range t.comments {
		if c.Is(id) {
			c.Likes = likes
			return true
		}
		for _, r := range c.Replies {
			if r.Is(id) {
				r.Likes = likes
				return true
			}
		}
	}

	return false
}

func (t *Thread) Comments() []*Comment {
	return t.comments
}

func (t *Thread) Len() int {
	return len(t.comments)
}
