// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// GeneratePlayers creates n players with ids 1..n. Registration dates are
// drawn backwards from reference.
func GeneratePlayers(rng *RNG, profile *Profile, n int, reference time.Time) []dataset.Player {
	players := make([]dataset.Player, 0, n)
	weights := profile.archetypeWeights()
	today := truncateDay(reference)

	for i := 0; i < n; i++ {
		id := int64(i + 1)
		regDaysAgo := rng.IntBetween(0, profile.RegistrationMaxDaysAgo)
		vip := drawVIP(rng, profile)
		country := rng.Choice(profile.Countries)
		acquisition := rng.Choice(profile.AcquisitionSources)

		archetype := dataset.Archetypes[rng.WeightedIndex(weights)]
		ap := profile.Archetypes[archetype]
		friends := int(ap.Friends.magnitude(rng))
		messages := int(ap.Messages.magnitude(rng))
		if !ap.VIPEligible {
			vip = 0
		}

		players = append(players, dataset.Player{
			PlayerID:         id,
			Username:         fmt.Sprintf("user_%d", id),
			RegistrationDate: today.AddDate(0, 0, -regDaysAgo),
			Country:          country,
			VIPLevel:         vip,
			Acquisition:      acquisition,
			FriendsCount:     friends,
			MessagesSent:     messages,
			Archetype:        archetype,
		})
	}

	return players
}

// drawVIP returns clip(round(Exponential(scale)), 0, max).
func drawVIP(rng *RNG, profile *Profile) int {
	v := math.Round(rng.Exponential(profile.VIPScale))
	return int(math.Max(0, math.Min(v, float64(profile.VIPMax))))
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
