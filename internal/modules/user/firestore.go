package user

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const userCollection = "users"

type firestoreRepository struct{ client *firestore.Client }

// NewFirestoreRepository creates a Firestore-backed profile repository.
// Documents are keyed by the identity provider uid, matching the profile
// written at account creation.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Create(ctx context.Context, p *Profile) error {
	_, err := r.client.Collection(userCollection).Doc(p.UID).Set(ctx, p)
	return err
}

func (r *firestoreRepository) GetByUID(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.client.Collection(userCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, err
	}
	p := &Profile{}
	if err := doc.DataTo(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *firestoreRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	iter := r.client.Collection(userCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("no profile for %s", email)
	}
	if err != nil {
		return nil, err
	}
	p := &Profile{}
	if err := doc.DataTo(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *firestoreRepository) List(ctx context.Context) ([]*Profile, error) {
	docs, err := r.client.Collection(userCollection).
		OrderBy("role", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	profiles := make([]*Profile, 0, len(docs))
	for _, doc := range docs {
		p := &Profile{}
		if err := doc.DataTo(p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *firestoreRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.client.Collection(userCollection).Doc(uid).Delete(ctx)
	return err
}
