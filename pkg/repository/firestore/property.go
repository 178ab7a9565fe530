package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PropertiesCollection is the collection name without prefix
const PropertiesCollection = "properties"

type propertyDocument struct {
	ShortName string    `firestore:"short_name"`
	Label     string    `firestore:"label"`
	Type      string    `firestore:"type"`
	Options   []string  `firestore:"options,omitempty"`
	Public    bool      `firestore:"public"`
	Order     int       `firestore:"order"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type propertyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPropertyRepository(client *firestore.Client) *propertyRepository {
	return &propertyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *propertyRepository) propertiesCollection() string {
	return CollectionName(r.collectionPrefix, PropertiesCollection)
}

func propertyToDocument(p *model.Property) *propertyDocument {
	return &propertyDocument{
		ShortName: string(p.ShortName),
		Label:     p.Label,
		Type:      string(p.Type),
		Options:   p.Options,
		Public:    p.Public,
		Order:     p.Order,
		UpdatedAt: time.Now().UTC(),
	}
}

func propertyToModel(doc *propertyDocument) *model.Property {
	return &model.Property{
		ShortName: types.ShortName(doc.ShortName),
		Label:     doc.Label,
		Type:      types.PropertyType(doc.Type),
		Options:   doc.Options,
		Public:    doc.Public,
		Order:     doc.Order,
	}
}

func (r *propertyRepository) List(ctx context.Context) ([]*model.Property, error) {
	iter := r.client.Collection(r.propertiesCollection()).
		OrderBy("order", firestore.Asc).
		OrderBy("label", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var props []*model.Property
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate properties")
		}

		var propDoc propertyDocument
		if err := doc.DataTo(&propDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal property", goerr.V("doc_id", doc.Ref.ID))
		}
		props = append(props, propertyToModel(&propDoc))
	}

	// unordered properties (order 0) come first from the query
	return model.SortProperties(props), nil
}

func (r *propertyRepository) Get(ctx context.Context, name types.ShortName) (*model.Property, error) {
	doc, err := r.client.Collection(r.propertiesCollection()).Doc(string(name)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrPropertyNotFound, "property not found", goerr.V(model.ShortNameKey, name))
		}
		return nil, goerr.Wrap(err, "failed to get property", goerr.V(model.ShortNameKey, name))
	}

	var propDoc propertyDocument
	if err := doc.DataTo(&propDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal property", goerr.V(model.ShortNameKey, name))
	}
	return propertyToModel(&propDoc), nil
}

func (r *propertyRepository) Put(ctx context.Context, prop *model.Property) error {
	if err := prop.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to store invalid property")
	}

	ref := r.client.Collection(r.propertiesCollection()).Doc(string(prop.ShortName))
	if _, err := ref.Set(ctx, propertyToDocument(prop)); err != nil {
		return goerr.Wrap(err, "failed to save property", goerr.V(model.ShortNameKey, prop.ShortName))
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, name types.ShortName) error {
	ref := r.client.Collection(r.propertiesCollection()).Doc(string(name))
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrPropertyNotFound, "property not found", goerr.V(model.ShortNameKey, name))
		}
		return goerr.Wrap(err, "failed to delete property", goerr.V(model.ShortNameKey, name))
	}
	return nil
}
