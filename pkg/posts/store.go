package posts

import (
	"strings"
	"sync"

	"campusclone/pkg/user"
)

// Store owns the canonical post collection, the derived filtered view and
// the current-post value copy used by the detail screen. All mutators are
// pure state transitions: no I/O, no failure. Callers commit a mutation only
// after the matching server call succeeded, so a failed call leaves the
// store untouched.
//
// The filtered view shares entries with the canonical collection, so a field
// update on a canonical post is visible through the filtered view as well.
// The current post is an independent copy and gets every mutation applied
// separately.
type Store struct {
	mu       *sync.Mutex
	posts    []*Post
	filtered []*Post
	current  *Post
	query    string
	category Category
}

func NewStore() *Store {
	return &Store{
		mu:       &sync.Mutex{},
		posts:    make([]*Post, 0, 10),
		filtered: make([]*Post, 0, 10),
		category: All,
	}
}

// LoadPosts normalizes the fetched list, replaces the canonical collection
// and recomputes the derived view. Last write wins when two screens load
// concurrently.
func (s *Store) LoadPosts(list []*Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range list {
		p.normalize()
	}

	s.posts = list
	s.recompute()
}

// CreatePost prepends the server-assigned post to the canonical collection
// and to the derived view. The derived view is intentionally not recomputed:
// with an active filter the new post stays visible until the next explicit
// recomputation.
func (s *Store) CreatePost(p *Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.normalize()
	s.posts = append([]*Post{p}, s.posts...)
	s.filtered = append([]*Post{p}, s.filtered...)
}

// SetCurrentPost replaces the detail view's value copy.
func (s *Store) SetCurrentPost(p *Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil {
		s.current = nil
		return
	}

	p.normalize()
	s.current = p.clone()
}

// AddComment bumps the aggregate comment count on the canonical entry and on
// the current copy. The comment bodies themselves live only in the detail
// view's thread.
func (s *Store) AddComment(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.find(postID); p != nil {
		p.CommentsCount++
	}
	if s.current != nil && s.current.Is(postID) {
		s.current.CommentsCount++
	}
}

func (s *Store) DeleteComment(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.find(postID); p != nil && p.CommentsCount > 0 {
		p.CommentsCount--
	}
	if s.current != nil && s.current.Is(postID) && s.current.CommentsCount > 0 {
		s.current.CommentsCount--
	}
}

// UpdateLikes replaces the like set with the server's authoritative response.
func (s *Store) UpdateLikes(postID string, likes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if likes == nil {
		likes = []string{}
	}
	if p := s.find(postID); p != nil {
		p.Likes = likes
	}
	if s.current != nil && s.current.Is(postID) {
		s.current.Likes = append([]string{}, likes...)
	}
}

func (s *Store) UpdateSaves(postID string, saves []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if saves == nil {
		saves = []string{}
	}
	if p := s.find(postID); p != nil {
		p.Saves = saves
	}
	if s.current != nil && s.current.Is(postID) {
		s.current.Saves = append([]string{}, saves...)
	}
}

// Patch is a partial post edit applied after a successful PUT.
type Patch struct {
	Title       *string
	Content     *string
	Category    *Category
	Link        *string
	Attachments *[]string
	Tags        *[]user.Ref
}

func (s *Store) UpdatePost(postID string, patch *Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.find(postID); p != nil {
		applyPatch(p, patch)
	}
	if s.current != nil && s.current.Is(postID) {
		applyPatch(s.current, patch)
	}
}

func applyPatch(p *Post, patch *Patch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Link != nil {
		p.Link = *patch.Link
	}
	if patch.Attachments != nil {
		p.Attachments = *patch.Attachments
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
}

func (s *Store) DeletePost(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = remove(s.posts, postID)
	s.filtered = remove(s.filtered, postID)
	if s.current != nil && s.current.Is(postID) {
		s.current = nil
	}
}

func (s *Store) SetFilter(query string, category Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.category = category
}

// RecomputeFilter rebuilds the derived view from the canonical collection and
// the current filter state. Idempotent for unchanged inputs.
func (s *Store) RecomputeFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recompute()
}

func (s *Store) recompute() {
	query := strings.ToLower(strings.TrimSpace(s.query))

	res := make([]*Post, 0, len(s.posts))
	for _, p := range s.posts {
		if s.category != All && p.Category != s.category {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		res = append(res, p)
	}

	s.filtered = res
}

func matches(p *Post, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Content), query) ||
		strings.Contains(strings.ToLower(p.Author.Name), query)
}

func (s *Store) Posts() []*Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

func (s *Store) Filtered() []*Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered
}

func (s *Store) Current() *Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Store) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Store) Category() Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *Store) find(postID string) *Post {
	for _, p := range s.posts {
		if p.Is(postID) {
			return p
		}
	}

	return nil
}

func remove(list []*Post, postID string) []*Post {
	res := make([]*Post, 0, len(list))
	for _, p := range list {
		if p.Is(postID) {
			continue
		}
		res = append(res, p)
	}

	return res
}
