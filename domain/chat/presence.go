package chat

import "sort"

// PresenceSet lists the users holding an active session, sorted and without duplicates.
type PresenceSet []string

// NewPresenceSet builds a PresenceSet from registry keys.
func NewPresenceSet(userIDs []string) PresenceSet {
	set := make(map[string]struct{}, len(userIDs))
	out := make(PresenceSet, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (p PresenceSet) Contains(userID string) bool {
	i := sort.SearchStrings(p, userID)
	return i < len(p) && p[i] == userID
}
