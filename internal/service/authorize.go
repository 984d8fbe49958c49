package service

import (
	"github.com/dukerupert/listmate/internal/access"
	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/store"
)

// authorizeList loads a live list with its participant set and checks the
// caller against the required permission tier. manage-level operations are
// owner-only; everything else accepts owner or participant.
func authorizeList(lists *store.ListStore, listID, userID int64, manage bool) (*model.List, []model.ListParticipant, error) {
	list, err := lists.GetByID(listID)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, notFound("list not found")
	}

	participants, err := lists.ListParticipants(listID)
	if err != nil {
		return nil, nil, err
	}

	if manage {
		if !access.CanManage(list, userID) {
			return nil, nil, forbidden("only the list owner may perform this action")
		}
	} else if !access.CanParticipate(list, participants, userID) {
		return nil, nil, forbidden("access denied")
	}

	return list, participants, nil
}
