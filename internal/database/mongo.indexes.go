package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// indexSpec is one index derived from a model's `index` struct tags.
type indexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseOrder extracts the sort order from a tag (1 or -1).
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag splits `unique,sparse;compound:group` into one map per ';' part.
func parseIndexTag(tag string) []map[string]string {
	parts := strings.Split(tag, ";")
	result := []map[string]string{}

	for _, part := range parts {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

// bsonName returns the bson field name of a struct field, or "" when it is not stored.
func bsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("bson"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// indexSpecsFromModel reads the `index` tags of model.
//
// Supported tags: text, single, unique (optionally with sparse), ttl:<seconds>,
// compound:<group>. A compound group whose name contains "_unique" is unique;
// text inside a compound group joins the fields into one text index.
func indexSpecsFromModel(model interface{}) ([]indexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []indexSpec
	compoundGroups := map[string]bson.D{}
	compoundSparse := map[string]bool{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		name := bsonName(field)
		if name == "" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			_, sparse := cfg["sparse"]
			_, isText := cfg["text"]
			group, isCompound := cfg["compound"]

			if isText && !isCompound {
				indexName := name + "_text"
				specs = append(specs, indexSpec{indexName, bson.D{{Key: name, Value: "text"}}, options.Index().SetName(indexName)})
			}
			if _, ok := cfg["single"]; ok {
				indexName := name + "_single"
				specs = append(specs, indexSpec{indexName, bson.D{{Key: name, Value: parseOrder(tag)}}, options.Index().SetName(indexName)})
			}
			if _, ok := cfg["unique"]; ok {
				indexName := name + "_unique"
				opts := options.Index().SetName(indexName).SetUnique(true)
				if sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{indexName, bson.D{{Key: name, Value: 1}}, opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("invalid ttl on %s: %w", name, err)
				}
				indexName := name + "_ttl"
				specs = append(specs, indexSpec{indexName, bson.D{{Key: name, Value: 1}}, options.Index().SetName(indexName).SetExpireAfterSeconds(int32(ttl))})
			}
			if isCompound {
				var value interface{} = parseOrder(tag)
				if isText {
					value = "text"
				}
				compoundGroups[group] = append(compoundGroups[group], bson.E{Key: name, Value: value})
				if sparse {
					compoundSparse[group] = true
				}
			}
		}
	}

	groups := make([]string, 0, len(compoundGroups))
	for group := range compoundGroups {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		opts := options.Index().SetName(group)
		if strings.Contains(group, "_unique") {
			opts.SetUnique(true)
		}
		if compoundSparse[group] {
			opts.SetSparse(true)
		}
		specs = append(specs, indexSpec{group, compoundGroups[group], opts})
	}
	return specs, nil
}

// compareIndex reports whether an existing index already matches keys and options.
func compareIndex(existingIndex bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok {
		return false
	}
	if isTextIndex(keys) {
		// text indexes are stored as {_fts, _ftsx}; the field list lives in weights
		weights, _ := existingIndex["weights"].(bson.M)
		if _, fts := existingKeys["_fts"]; !fts || len(weights) != len(keys) {
			return false
		}
		for _, key := range keys {
			if _, ok := weights[key.Key]; !ok {
				return false
			}
		}
		return true
	}
	if len(existingKeys) != len(keys) {
		return false
	}

	for _, key := range keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}
		newVal, isInt := key.Value.(int)
		if !isInt {
			if existingValue != key.Value {
				return false
			}
			continue
		}
		switch ev := existingValue.(type) {
		case int32:
			if int(ev) != newVal {
				return false
			}
		case int64:
			if int(ev) != newVal {
				return false
			}
		case float64:
			if int(ev) != newVal {
				return false
			}
		default:
			return false
		}
	}

	wantUnique := opts.Unique != nil && *opts.Unique
	haveUnique, _ := existingIndex["unique"].(bool)
	if wantUnique != haveUnique {
		return false
	}

	if opts.ExpireAfterSeconds != nil {
		ttl, ok := existingIndex["expireAfterSeconds"].(int32)
		if !ok || ttl != *opts.ExpireAfterSeconds {
			return false
		}
	}
	return true
}

func isTextIndex(keys bson.D) bool {
	for _, key := range keys {
		if key.Value == "text" {
			return true
		}
	}
	return false
}

// checkAndReplaceIndex creates the index, dropping a same-named index with a different shape first.
func checkAndReplaceIndex(ctx context.Context, collection *mongo.Collection, existingIndexes map[string]bson.M, spec indexSpec) error {
	log := logger.WithCollection(collection.Name()).WithField("index", spec.Name)

	if existingIndex, exists := existingIndexes[spec.Name]; exists {
		if compareIndex(existingIndex, spec.Keys, spec.Options) {
			log.Debug("Index up to date")
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
			return fmt.Errorf("drop index %s: %w", spec.Name, err)
		}
		log.Info("Dropped outdated index")
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil {
		return fmt.Errorf("create index %s: %w", spec.Name, err)
	}
	log.Info("Created index")
	return nil
}

// CreateIndexes creates the indexes declared by model's `index` tags on collection.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs, err := indexSpecsFromModel(model)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return nil
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("decode index info: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	for _, spec := range specs {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}
	return nil
}
