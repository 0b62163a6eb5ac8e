package recommend

import "testing"

func TestRank(t *testing.T) {
	scorer := NewScorer()

	candidates := []Candidate{
		{ID: "airtime", Title: "Weekly Airtime Bundle", Description: "airtime top-up", Category: "Luco Week"},
		{ID: "data", Title: "Monthly Data Pack", Description: "10GB data bundle", Category: "Luco Month"},
		{ID: "promo", Title: "Launch Promo", Description: "free sticker", Category: "Promo"},
	}

	t.Run("orders by relevance", func(t *testing.T) {
		got := scorer.Rank("bought airtime bundle last week", candidates, 10)
		if len(got) < 2 {
			t.Fatalf("got %d recommendations", len(got))
		}
		if got[0].ID != "airtime" {
			t.Errorf("top pick = %q, want airtime", got[0].ID)
		}
		if got[0].Score <= got[len(got)-1].Score {
			t.Errorf("scores not descending: %+v", got)
		}
	})

	t.Run("drops zero scores", func(t *testing.T) {
		got := scorer.Rank("data bundle", candidates, 10)
		for _, rec := range got {
			if rec.ID == "promo" {
				t.Error("unrelated candidate should be dropped")
			}
		}
	})

	t.Run("respects the limit", func(t *testing.T) {
		got := scorer.Rank("airtime data bundle week month", candidates, 1)
		if len(got) != 1 {
			t.Fatalf("got %d recommendations with limit 1", len(got))
		}
	})

	t.Run("empty history yields nothing", func(t *testing.T) {
		if got := scorer.Rank("  ", candidates, 10); got != nil {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("fresh candidates break ties", func(t *testing.T) {
		pair := []Candidate{
			{ID: "old", Title: "Data Pack", Category: "Luco Week"},
			{ID: "new", Title: "Data Pack", Category: "Luco Week", IsNew: true},
		}
		got := scorer.Rank("data", pair, 2)
		if len(got) != 2 || got[0].ID != "new" {
			t.Errorf("got %+v, want new first", got)
		}
	})
}

func TestTokenize(t *testing.T) {
	terms := tokenize("Airtime, airtime; of the WEEK!")
	if terms["airtime"] != 2 {
		t.Errorf("airtime count = %d", terms["airtime"])
	}
	if terms["week"] != 1 {
		t.Errorf("week count = %d", terms["week"])
	}
	if _, ok := terms["of"]; ok {
		t.Error("short filler words must not be counted")
	}
}
