/*
Package redistore provides a registry of exported tree documents backed
by a redis database, so that trees produced by a search run can be
published under a name and fetched by reporting tools.
*/
package redistore

import (
	"context"
	"fmt"

	"github.com/ubc-systopia/gosdt-guesses/model/export"
	"gopkg.in/redis.v5"
)

/*
Registry is a named store of exported tree documents.
*/
type Registry struct {
	rc     *redis.Client
	prefix string
}

/*
New takes a redis client and a key prefix and returns a Registry that
stores documents under prefixed keys in the client's database.
*/
func New(rc *redis.Client, prefix string) *Registry {
	return &Registry{rc: rc, prefix: prefix}
}

/*
Save stores a document under the given name, failing if the name is
already taken or the document cannot be serialized or stored.
*/
func (r *Registry) Save(ctx context.Context, name string, doc export.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := export.Marshal(doc)
	if err != nil {
		return fmt.Errorf("saving document %q: encoding: %v", name, err)
	}
	ok, err := r.rc.SetNX(r.keyFor(name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("saving document %q in redis: %v", name, err)
	}
	if !ok {
		return fmt.Errorf("saving document %q: name already taken", name)
	}
	return nil
}

/*
Store stores a document under the given name, overwriting any document
already stored under it.
*/
func (r *Registry) Store(ctx context.Context, name string, doc export.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := export.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storing document %q: encoding: %v", name, err)
	}
	_, err = r.rc.Set(r.keyFor(name), data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing document %q in redis: %v", name, err)
	}
	return nil
}

/*
Load returns the document stored under the given name, or nil if no
document is stored under it.
*/
func (r *Registry) Load(ctx context.Context, name string) (export.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := r.rc.Get(r.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving document %q: %v", name, err)
	}
	doc, err := export.Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving document %q: decoding: %v", name, err)
	}
	return doc, nil
}

// Delete removes the document stored under the given name.
func (r *Registry) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.rc.Del(r.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting document %q from redis: %v", name, err)
	}
	return nil
}

// Close closes the underlying redis client.
func (r *Registry) Close(ctx context.Context) error {
	return r.rc.Close()
}

func (r *Registry) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", r.prefix, name)
}
