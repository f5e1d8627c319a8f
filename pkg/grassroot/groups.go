package grassroot

import (
	"context"
	"strings"
)

// AddGroup creates a group owned by userID with the given member phones.
// The server takes the phones as one space separated segment.
func (c *Client) AddGroup(ctx context.Context, userID int64, phones ...string) (Entity, error) {
	return c.object(ctx, GroupAdd, userID, strings.Join(phones, " "))
}

// AddSubGroup nests a new group called name under groupID.
func (c *Client) AddSubGroup(ctx context.Context, userID, groupID int64, name string) (Entity, error) {
	return c.object(ctx, GroupAddSubgroup, userID, groupID, name)
}

// AddUserToGroup adds userID to groupID and returns the updated group.
func (c *Client) AddUserToGroup(ctx context.Context, userID, groupID int64) (Entity, error) {
	return c.object(ctx, GroupAddUserToGroup, userID, groupID)
}

// ListGroupAndSubgroups returns groupID followed by its whole subtree.
func (c *Client) ListGroupAndSubgroups(ctx context.Context, groupID int64) ([]Entity, error) {
	return c.list(ctx, GroupListGroupAndSubgroups, groupID)
}
