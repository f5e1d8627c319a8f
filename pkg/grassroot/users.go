package grassroot

import "context"

// AddUser loads or creates the user for phone.
func (c *Client) AddUser(ctx context.Context, phone string) (Entity, error) {
	return c.object(ctx, UserAdd, phone)
}

// ListUsers returns every user known to the server.
func (c *Client) ListUsers(ctx context.Context) ([]Entity, error) {
	return c.list(ctx, UserList)
}

// SetInitiatedSession marks the user as having started a session.
func (c *Client) SetInitiatedSession(ctx context.Context, userID int64) (Entity, error) {
	return c.object(ctx, UserSetInitiatedSession, userID)
}
