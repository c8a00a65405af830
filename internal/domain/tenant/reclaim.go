package tenant

import "context"

// UniqueTeamIDs drops duplicates while keeping first-seen order.
func UniqueTeamIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ReclaimTeam deletes a team and all of its scoped data once it has no
// members left. It reports whether the team was removed and the image
// URLs of the posts that went with it.
//
// Bookings go before services because bookings.service_id references them.
func ReclaimTeam(ctx context.Context, c Cascade, teamID uint) (bool, []string, error) {
	exists, err := c.LockTeam(ctx, teamID)
	if err != nil {
		return false, nil, err
	}
	if !exists {
		return false, nil, nil
	}

	members, err := c.CountMembers(ctx, teamID)
	if err != nil {
		return false, nil, err
	}
	if members > 0 {
		return false, nil, nil
	}

	steps := []func(context.Context, uint) error{
		c.DeleteTeamBookings,
		c.DeleteTeamServices,
		c.DeleteTeamProducts,
		c.DeleteTeamInvitations,
		c.DeleteTeamActivityLogs,
	}
	for _, step := range steps {
		if err := step(ctx, teamID); err != nil {
			return false, nil, err
		}
	}

	images, err := c.DeleteTeamPosts(ctx, teamID)
	if err != nil {
		return false, nil, err
	}

	if err := c.DeleteTeam(ctx, teamID); err != nil {
		return false, nil, err
	}

	return true, images, nil
}
