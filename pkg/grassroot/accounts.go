package grassroot

import "context"

// AddAccount creates a paid account called accountName for groupID.
func (c *Client) AddAccount(ctx context.Context, userID, groupID int64, accountName string) (Entity, error) {
	return c.object(ctx, AccountAdd, userID, groupID, accountName)
}
