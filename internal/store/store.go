package store

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"clubroster/internal/model"
)

// Seed is the initial roster state handed to New.
type Seed struct {
	Tags    []model.Tag    `json:"tags"`
	Members []model.Member `json:"members"`
}

// Snapshot is the roster state at one version. A published snapshot is never
// modified; callers must treat its slices as read-only.
type Snapshot struct {
	Version  uint64
	Members  []model.Member
	Tags     []model.Tag
	Selected *model.Member
}

// Member looks up a member by id.
func (s Snapshot) Member(id string) (model.Member, bool) {
	if i := s.MemberIndex(id); i >= 0 {
		return s.Members[i], true
	}
	return model.Member{}, false
}

// MemberIndex returns the position of id in the member sequence, or -1.
func (s Snapshot) MemberIndex(id string) int {
	for i := range s.Members {
		if s.Members[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Snapshot) Tag(id string) (model.Tag, bool) {
	for _, t := range s.Tags {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tag{}, false
}

// Store owns the roster state. Mutation methods are the only write path; each
// successful mutation publishes a new Snapshot.
type Store struct {
	mu  sync.Mutex
	cur *Snapshot

	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New builds a Store from seed data. The seed is copied; it fails with a
// *SeedError when ids repeat or a tag category is unknown.
func New(seed Seed, opts ...Option) (*Store, error) {
	if err := validateSeed(seed); err != nil {
		return nil, err
	}
	s := &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: newUUID,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}

	members := make([]model.Member, len(seed.Members))
	for i, m := range seed.Members {
		members[i] = cloneMember(m)
	}
	s.cur = &Snapshot{
		Version: 1,
		Members: members,
		Tags:    append([]model.Tag(nil), seed.Tags...),
	}
	return s, nil
}

func validateSeed(seed Seed) error {
	tagIDs := map[string]bool{}
	for _, t := range seed.Tags {
		if t.ID == "" {
			return &SeedError{Kind: "tag", Reason: "missing id"}
		}
		if tagIDs[t.ID] {
			return &SeedError{Kind: "tag", ID: t.ID, Reason: "duplicate id"}
		}
		if !t.Category.Valid() {
			return &SeedError{Kind: "tag", ID: t.ID, Reason: "unknown category " + string(t.Category)}
		}
		tagIDs[t.ID] = true
	}
	memberIDs := map[string]bool{}
	for _, m := range seed.Members {
		if m.ID == "" {
			return &SeedError{Kind: "member", Reason: "missing id"}
		}
		if memberIDs[m.ID] {
			return &SeedError{Kind: "member", ID: m.ID, Reason: "duplicate id"}
		}
		memberIDs[m.ID] = true
	}
	return nil
}

// Snapshot returns the current published state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cur
}

// Seed returns the current state in seed form, suitable for export.
func (s *Store) Seed() Seed {
	snap := s.Snapshot()
	return Seed{
		Tags:    append([]model.Tag(nil), snap.Tags...),
		Members: append([]model.Member(nil), snap.Members...),
	}
}

func (s *Store) publish(next Snapshot) Snapshot {
	next.Version = s.cur.Version + 1
	s.cur = &next
	return next
}

// AddMember appends a new editable member built from data. Tag ids that do not
// resolve against the current tag list are dropped.
func (s *Store) AddMember(data model.MemberFormData) model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.cur
	m := model.Member{
		ID:           s.uniqueMemberID(cur),
		Name:         data.Name,
		Avatar:       data.Avatar,
		Introduction: data.Introduction,
		Tags:         ResolveTags(cur.Tags, data.Tags),
		IsEditable:   true,
		CreatedAt:    s.now(),
	}
	members := make([]model.Member, 0, len(cur.Members)+1)
	members = append(members, cur.Members...)
	members = append(members, m)
	cur.Members = members
	next := s.publish(cur)

	s.log.Debug("member added", "id", m.ID, "tags", len(m.Tags), "version", next.Version)
	return m
}

// UpdateMember replaces the profile fields and tags of member id, keeping its
// id, creation time, editability and position. Unknown ids are ignored.
func (s *Store) UpdateMember(id string, data model.MemberFormData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.cur
	idx := cur.MemberIndex(id)
	if idx < 0 {
		s.log.Debug("update of unknown member ignored", "id", id)
		return false
	}

	updated := cur.Members[idx]
	updated.Name = data.Name
	updated.Avatar = data.Avatar
	updated.Introduction = data.Introduction
	updated.Tags = ResolveTags(cur.Tags, data.Tags)

	members := append([]model.Member(nil), cur.Members...)
	members[idx] = updated
	cur.Members = members
	if cur.Selected != nil && cur.Selected.ID == id {
		sel := updated
		cur.Selected = &sel
	}
	next := s.publish(cur)

	s.log.Debug("member updated", "id", id, "tags", len(updated.Tags), "version", next.Version)
	return true
}

// AddTag appends a new tag. Names are not checked for duplicates. A category
// outside model.Categories is rejected and reports false.
func (s *Store) AddTag(data model.TagFormData) (model.Tag, bool) {
	if !data.Category.Valid() {
		s.log.Debug("tag with unknown category ignored", "category", data.Category)
		return model.Tag{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.cur
	t := model.Tag{
		ID:       s.uniqueTagID(cur),
		Name:     data.Name,
		Category: data.Category,
		Color:    data.Color,
	}
	tags := make([]model.Tag, 0, len(cur.Tags)+1)
	tags = append(tags, cur.Tags...)
	tags = append(tags, t)
	cur.Tags = tags
	next := s.publish(cur)

	s.log.Debug("tag added", "id", t.ID, "category", t.Category, "version", next.Version)
	return t, true
}

// ReorderMembers moves the member at oldIndex so that it ends up at newIndex.
// Equal indices leave the sequence untouched. Indices outside the sequence are
// ignored and report false.
func (s *Store) ReorderMembers(oldIndex, newIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.cur
	n := len(cur.Members)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		s.log.Debug("reorder out of range ignored", "old", oldIndex, "new", newIndex, "len", n)
		return false
	}
	if oldIndex == newIndex {
		return true
	}
	cur.Members = Move(cur.Members, oldIndex, newIndex)
	next := s.publish(cur)

	s.log.Debug("members reordered", "old", oldIndex, "new", newIndex, "version", next.Version)
	return true
}

// SelectMember marks member id as selected for the detail view.
func (s *Store) SelectMember(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.cur
	m, ok := cur.Member(id)
	if !ok {
		return false
	}
	cur.Selected = &m
	s.publish(cur)
	return true
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur.Selected == nil {
		return
	}
	cur := *s.cur
	cur.Selected = nil
	s.publish(cur)
}

func cloneMember(m model.Member) model.Member {
	m.Tags = append([]model.Tag(nil), m.Tags...)
	return m
}
