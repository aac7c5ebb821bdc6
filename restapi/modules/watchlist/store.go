// Package watchlist implements the per-user saved asteroid list.
package watchlist

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
)

// ListItems returns the user's watchlist, most recently added first.
func ListItems(ctx context.Context, db database.DBConnection, userKey string) ([]model.WatchlistItem, error) {
	query := `
		FOR w IN watchlist
		FILTER w.user_id == @user
		SORT w.added_at DESC
		RETURN w
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user": userKey},
	})
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer cursor.Close()

	items := []model.WatchlistItem{}
	for cursor.HasMore() {
		var item model.WatchlistItem
		meta, err := cursor.ReadDocument(ctx, &item)
		if err != nil {
			return nil, fmt.Errorf("list watchlist: %w", err)
		}
		item.Key = meta.Key
		items = append(items, item)
	}
	return items, nil
}

// FindByAsteroid looks up the user's entry for one asteroid. Returns nil
// without error when no entry exists.
func FindByAsteroid(ctx context.Context, db database.DBConnection, userKey, asteroidID string) (*model.WatchlistItem, error) {
	query := `
		FOR w IN watchlist
		FILTER w.user_id == @user AND w.asteroid_id == @asteroid
		LIMIT 1
		RETURN w
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"user": userKey, "asteroid": asteroidID},
	})
	if err != nil {
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var item model.WatchlistItem
	meta, err := cursor.ReadDocument(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("find watchlist item: %w", err)
	}
	item.Key = meta.Key
	return &item, nil
}

// FindByKey reads one watchlist document by key. Returns nil without error
// when the document does not exist.
func FindByKey(ctx context.Context, db database.DBConnection, key string) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	meta, err := db.Collections[database.CollectionWatchlist].ReadDocument(ctx, key, &item)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read watchlist item: %w", err)
	}
	item.Key = meta.Key
	return &item, nil
}

// CreateItem inserts a new watchlist document and sets its key.
func CreateItem(ctx context.Context, db database.DBConnection, item *model.WatchlistItem) error {
	resp, err := db.Collections[database.CollectionWatchlist].CreateDocument(ctx, item)
	if err != nil {
		return fmt.Errorf("create watchlist item: %w", err)
	}
	item.Key = resp.Key
	return nil
}

// UpdateItem patches an existing watchlist document.
func UpdateItem(ctx context.Context, db database.DBConnection, item *model.WatchlistItem) error {
	_, err := db.Collections[database.CollectionWatchlist].UpdateDocument(ctx, item.Key, item)
	if err != nil {
		return fmt.Errorf("update watchlist item: %w", err)
	}
	return nil
}

// DeleteItem removes a watchlist document.
func DeleteItem(ctx context.Context, db database.DBConnection, key string) error {
	_, err := db.Collections[database.CollectionWatchlist].DeleteDocument(ctx, key)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	return nil
}
