package service

import (
	"sort"
	"strings"

	"auctioneer/models"
)

func sortChronologically(bids []*models.Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if !bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].CreatedAt.Before(bids[j].CreatedAt)
		}
		return bids[i].ID < bids[j].ID
	})
}

// winnerDigest is the set of won games delivered to one recipient
type winnerDigest struct {
	RecipientID int64
	UserID      int64
	Username    string
	Items       []*models.PendingWinnerNotification
}

func (d *winnerDigest) bidIDs() []int64 {
	ids := make([]int64, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.BidID)
	}
	return ids
}

// groupByRecipient builds one digest per recipient, ordered by recipient id,
// with each digest's games sorted by title and then game id
func groupByRecipient(pending []*models.PendingWinnerNotification) []*winnerDigest {
	byRecipient := make(map[int64]*winnerDigest)
	for _, item := range pending {
		digest, ok := byRecipient[item.RecipientID]
		if !ok {
			digest = &winnerDigest{
				RecipientID: item.RecipientID,
				UserID:      item.UserID,
				Username:    item.Username,
			}
			byRecipient[item.RecipientID] = digest
		}
		digest.Items = append(digest.Items, item)
	}

	digests := make([]*winnerDigest, 0, len(byRecipient))
	for _, digest := range byRecipient {
		sort.SliceStable(digest.Items, func(i, j int) bool {
			a, b := digest.Items[i], digest.Items[j]
			if c := strings.Compare(strings.ToLower(a.GameTitle), strings.ToLower(b.GameTitle)); c != 0 {
				return c < 0
			}
			return a.GameID < b.GameID
		})
		digests = append(digests, digest)
	}
	sort.Slice(digests, func(i, j int) bool {
		return digests[i].RecipientID < digests[j].RecipientID
	})

	return digests
}
