// Package access decides whether an identity may act on a list.
//
// The policy has exactly two tiers: manage-level (structure, membership,
// deletion) is owner-only, participate-level (reading, item operations) is
// owner-or-participant. Every decision is a plain boolean; callers pick the
// error to surface when access is denied.
package access

import "github.com/dukerupert/listmate/internal/model"

// CanManage reports whether userID owns the list.
func CanManage(list *model.List, userID int64) bool {
	return list.OwnerID == userID
}

// CanParticipate reports whether userID owns the list or appears in its
// participant set.
func CanParticipate(list *model.List, participants []model.ListParticipant, userID int64) bool {
	if CanManage(list, userID) {
		return true
	}
	for _, p := range participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// CanRead reports whether userID may read the list. Read access is identical
// to participation access in this model.
func CanRead(list *model.List, participants []model.ListParticipant, userID int64) bool {
	return CanParticipate(list, participants, userID)
}
