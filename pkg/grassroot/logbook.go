package grassroot

import "context"

// The logbook endpoints come in several arities on the same path prefix.
// Each arity has its own method; none of them defaults the optional segment.

func (c *Client) AddLogBook(ctx context.Context, userID, groupID int64, message string) (Entity, error) {
	return c.object(ctx, LogBookAdd, userID, groupID, message)
}

// AddLogBookReplicated also copies the entry to every subgroup when replicate is set.
func (c *Client) AddLogBookReplicated(ctx context.Context, userID, groupID int64, message string, replicate bool) (Entity, error) {
	return c.object(ctx, LogBookAddReplicate, userID, groupID, message, replicate)
}

// AddLogBookWithDate takes date in whatever form the server accepts.
func (c *Client) AddLogBookWithDate(ctx context.Context, userID, groupID int64, message, date string) (Entity, error) {
	return c.object(ctx, LogBookAddWithDate, userID, groupID, message, date)
}

func (c *Client) AddLogBookWithDateAndAssign(ctx context.Context, userID, groupID int64, message, date string, assigneeID int64) (Entity, error) {
	return c.object(ctx, LogBookAddWithDateAndAssign, userID, groupID, message, date, assigneeID)
}

// ListReplicated lists entries replicated into groupID.
func (c *Client) ListReplicated(ctx context.Context, groupID int64) ([]Entity, error) {
	return c.list(ctx, LogBookListReplicated, groupID)
}

// ListReplicatedByCompletion filters replicated entries on their completed flag.
func (c *Client) ListReplicatedByCompletion(ctx context.Context, groupID int64, completed bool) ([]Entity, error) {
	return c.list(ctx, LogBookListReplicatedCompleted, groupID, completed)
}

func (c *Client) ListReplicatedByMessage(ctx context.Context, groupID int64, message string) ([]Entity, error) {
	return c.list(ctx, LogBookListReplicatedByMessage, groupID, message)
}
