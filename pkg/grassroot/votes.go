package grassroot

import "context"

// AddVote opens a vote on issue for groupID.
func (c *Client) AddVote(ctx context.Context, userID, groupID int64, issue string) (Entity, error) {
	return c.object(ctx, VoteAdd, userID, groupID, issue)
}

func (c *Client) ListAllFutureVotes(ctx context.Context) ([]Entity, error) {
	return c.list(ctx, VoteListAllFuture)
}
