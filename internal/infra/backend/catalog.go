package backend

import (
	"context"

	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/usecase/shared"
)

const (
	pathRecords = "/api/Records"
	pathGroups  = "/api/Groups"
)

type CatalogAPI struct {
	client *Client
}

func NewCatalogAPI(client *Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

var _ shared.CatalogBackend = (*CatalogAPI)(nil)

func (a *CatalogAPI) ListRecords(ctx context.Context) ([]catalog.Record, error) {
	body, err := a.client.get(ctx, "records", pathRecords, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[recordDTO](body)
	if err != nil {
		return nil, a.client.malformed("records", err)
	}

	out := make([]catalog.Record, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toRecord())
	}
	return out, nil
}

func (a *CatalogAPI) ListGroups(ctx context.Context) ([]catalog.Group, error) {
	body, err := a.client.get(ctx, "groups", pathGroups, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[groupDTO](body)
	if err != nil {
		return nil, a.client.malformed("groups", err)
	}

	out := make([]catalog.Group, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, catalog.Group{ID: d.IDGroup, Name: d.NameGroup})
	}
	return out, nil
}
