package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"todo_reminder/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "todos"

// mongoTask is the stored document. Seq orders tasks created within the
// same millisecond, which is the resolution of BSON dates.
type mongoTask struct {
	ID        string    `bson:"_id"`
	Text      string    `bson:"text"`
	Completed bool      `bson:"completed"`
	Date      string    `bson:"date"`
	Time      string    `bson:"time"`
	CreatedAt time.Time `bson:"createdAt"`
	Seq       int64     `bson:"seq"`
}

func (m mongoTask) task() domain.Task {
	return domain.Task{
		ID:        m.ID,
		Text:      m.Text,
		Completed: m.Completed,
		Date:      m.Date,
		Time:      m.Time,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// MongoStore keeps tasks in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection

	mu      sync.Mutex
	lastSeq int64
}

// NewMongoStore ensures the ordering index exists.
func NewMongoStore(ctx context.Context, client *mongo.Client, database string) (*MongoStore, error) {
	coll := client.Database(database).Collection(mongoCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "seq", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// nextSeq is strictly increasing within the process and tracks wall time across restarts.
func (s *MongoStore) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := time.Now().UnixNano()
	if seq <= s.lastSeq {
		seq = s.lastSeq + 1
	}
	s.lastSeq = seq
	return seq
}

func (s *MongoStore) List(ctx context.Context) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "seq", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	res := make([]domain.Task, 0)
	for cur.Next(ctx) {
		var doc mongoTask
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		res = append(res, doc.task())
	}
	return res, cur.Err()
}

func (s *MongoStore) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	doc := mongoTask{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Date:      t.Date,
		Time:      t.Time,
		CreatedAt: t.CreatedAt.Truncate(time.Millisecond),
		Seq:       s.nextSeq(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, err
	}
	return doc.task(), nil
}

func (s *MongoStore) Toggle(ctx context.Context, id string) (domain.Task, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "completed", Value: bson.D{{Key: "$not", Value: "$completed"}}}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTask
	err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Task{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return doc.task(), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
