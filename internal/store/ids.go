package store

import "github.com/google/uuid"

func newUUID() string {
	return uuid.NewString()
}

// uniqueMemberID draws ids until one is unused. With the default generator the
// first draw always wins; the loop matters for injected generators.
func (s *Store) uniqueMemberID(cur Snapshot) string {
	for {
		id := s.newID()
		if id != "" && cur.MemberIndex(id) < 0 {
			return id
		}
	}
}

func (s *Store) uniqueTagID(cur Snapshot) string {
	for {
		id := s.newID()
		if _, taken := cur.Tag(id); id != "" && !taken {
			return id
		}
	}
}
