package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
)

// FindUserByKey reads a user document by its key.
func FindUserByKey(ctx context.Context, db database.DBConnection, key string) (*model.User, error) {
	var user model.User
	meta, err := db.Collections[database.CollectionUsers].ReadDocument(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	user.Key = meta.Key
	return &user, nil
}

// FindUserByEmail looks a user up by email, case-insensitively. Returns nil
// without error when no user matches.
func FindUserByEmail(ctx context.Context, db database.DBConnection, email string) (*model.User, error) {
	query := `
		FOR u IN users
		FILTER LOWER(u.email) == LOWER(@email)
		LIMIT 1
		RETURN u
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"email": email},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var user model.User
	meta, err := cursor.ReadDocument(ctx, &user)
	if err != nil {
		return nil, err
	}
	user.Key = meta.Key
	return &user, nil
}

// CreateUser inserts a new user document and returns it with its key set.
func CreateUser(ctx context.Context, db database.DBConnection, user *model.User) error {
	resp, err := db.Collections[database.CollectionUsers].CreateDocument(ctx, user)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.Key = resp.Key
	return nil
}

// UpdateUser patches an existing user document.
func UpdateUser(ctx context.Context, db database.DBConnection, user *model.User) error {
	_, err := db.Collections[database.CollectionUsers].UpdateDocument(ctx, user.Key, user)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// RecordViewedAsteroid appends a timestamped entry to the user's lookup log.
// The log is append-only and local to the user document.
func RecordViewedAsteroid(ctx context.Context, db database.DBConnection, userKey, asteroidID string) error {
	query := `
		UPDATE @key WITH {
			viewed_asteroids: PUSH(NOT_NULL(OLD.viewed_asteroids, []), @entry)
		} IN users
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"key": userKey,
			"entry": model.ViewedAsteroid{
				AsteroidID: asteroidID,
				ViewedAt:   time.Now().UTC(),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("record viewed asteroid: %w", err)
	}
	return cursor.Close()
}
