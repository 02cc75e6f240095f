package auction

import (
	"sort"

	"auctioneer/models"
)

// RankBids returns a copy of the bids ordered from strongest to weakest.
// Higher amounts rank first; equal amounts rank by earliest submission, and
// identical timestamps fall back to insert order (lower id first).
func RankBids(bids []*models.Bid) []*models.Bid {
	ranked := make([]*models.Bid, len(bids))
	copy(ranked, bids)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(ranked[i], ranked[j])
	})

	return ranked
}

func ranksBefore(a, b *models.Bid) bool {
	if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
		return cmp > 0
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// WinningBids returns the top totalSeats bids in rank order. When there are
// fewer bids than seats every bid wins.
func WinningBids(bids []*models.Bid, totalSeats int) []*models.Bid {
	if totalSeats <= 0 || len(bids) == 0 {
		return []*models.Bid{}
	}

	ranked := RankBids(bids)
	return ranked[:min(totalSeats, len(ranked))]
}

// SelectWinners returns the ids of the winning bids in rank order. The result
// depends only on the ledger contents, so recomputing it is idempotent.
func SelectWinners(bids []*models.Bid, totalSeats int) []int64 {
	winners := WinningBids(bids, totalSeats)

	ids := make([]int64, 0, len(winners))
	for _, bid := range winners {
		ids = append(ids, bid.ID)
	}
	return ids
}
