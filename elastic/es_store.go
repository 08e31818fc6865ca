package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	es "github.com/olivere/elastic/v7"
	"go.opentelemetry.io/otel/codes"

	treetranslation "github.com/snabble/go-treetranslation"
)

var DriverName = "elastic"

const defaultIndex = "tree_translation"

func init() {
	treetranslation.RegisterProvider(DriverName, NewElasticStore)
}

type ElasticStore struct {
	client *es.Client
	url    string
	index  string
}

// NewElasticStore connects to the cluster at dataSourceName. The url path,
// if any, names the index, e.g. http://127.0.0.1:9200/menu.
func NewElasticStore(dataSourceName string, options ...treetranslation.StoreOption) (treetranslation.Store, error) {
	u, err := url.Parse(dataSourceName)
	if err != nil {
		return nil, err
	}
	index := strings.Trim(u.Path, "/")
	if index == "" {
		index = defaultIndex
	}
	for _, option := range options {
		if i, ok := option.(treetranslation.Index); ok {
			index = string(i)
		}
	}
	u.Path = ""

	client, err := es.NewClient(
		es.SetURL(u.String()),
		es.SetSniff(false),
		es.SetHealthcheck(false),
	)
	return &ElasticStore{
		client: client,
		url:    u.String(),
		index:  index,
	}, err
}

func (store *ElasticStore) FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error) {
	ctx, span := tracer.Start(ctx, "FindOne")
	defer span.End()

	res, err := store.client.Get().
		Index(store.index).
		Id(strconv.FormatInt(id, 10)).
		Do(ctx)
	if es.IsNotFound(err) {
		span.AddEvent("not found")
		return treetranslation.TreeTranslation{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return treetranslation.TreeTranslation{}, false, err
	}
	if !res.Found {
		span.AddEvent("not found")
		return treetranslation.TreeTranslation{}, false, nil
	}

	t := treetranslation.TreeTranslation{}
	if err := json.Unmarshal(res.Source, &t); err != nil {
		return treetranslation.TreeTranslation{}, false, err
	}
	return t, true, nil
}

func (store *ElasticStore) Save(ctx context.Context, t treetranslation.TreeTranslation) (treetranslation.TreeTranslation, error) {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()

	if t.ID <= 0 {
		return t, errors.New("id must be positive")
	}
	t.UpdatedAt = time.Now().UTC()

	_, err := store.client.Index().
		Index(store.index).
		Refresh("true").
		Id(strconv.FormatInt(t.ID, 10)).
		BodyJson(t).
		Do(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return t, err
}

func (store *ElasticStore) Delete(ctx context.Context, t treetranslation.TreeTranslation) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	_, err := store.client.Delete().
		Refresh("true").
		Index(store.index).
		Id(strconv.FormatInt(t.ID, 10)).
		Do(ctx)
	if err == nil || es.IsNotFound(err) {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	deleteErr := &treetranslation.DeleteError{ID: t.ID, Err: err}
	var esErr *es.Error
	if errors.As(err, &esErr) && esErr.Details != nil {
		deleteErr.Detail = esErr.Details.Reason
	}
	return deleteErr
}

func (store *ElasticStore) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err := store.client.Ping(store.url).Do(ctx)
	return err
}
