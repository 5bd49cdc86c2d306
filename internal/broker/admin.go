package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// CleanTopics implements spec.md §6's clean_topics flag: every declared
// topic is deleted and recreated before BulkLoadMasters begins, so a run
// starts from an empty topic rather than appending to whatever a previous
// run left behind. Grounded on the admin-client construction and
// CreateTopics/result-checking shape in
// other_examples/georgelza-MongoCreator-GoProducer-x__main.go, generalized
// from two hardcoded topics to an arbitrary declared set and extended with
// the DeleteTopics half spec.md §6 also requires.
func CleanTopics(conf *kafka.ConfigMap, topics []string, numPartitions, replicationFactor int, timeout time.Duration) error {
	admin, err := kafka.NewAdminClient(conf)
	if err != nil {
		return fmt.Errorf("clean_topics: admin client: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	deleteResults, err := admin.DeleteTopics(ctx, topics, kafka.SetAdminOperationTimeout(timeout))
	if err != nil {
		return fmt.Errorf("clean_topics: delete topics: %w", err)
	}
	for _, r := range deleteResults {
		if r.Error.Code() != kafka.ErrNoError && r.Error.Code() != kafka.ErrUnknownTopicOrPart {
			return fmt.Errorf("clean_topics: delete topic %q failed: %v", r.Topic, r.Error.String())
		}
	}

	specs := make([]kafka.TopicSpecification, len(topics))
	for i, topic := range topics {
		specs[i] = kafka.TopicSpecification{
			Topic:             topic,
			NumPartitions:     numPartitions,
			ReplicationFactor: replicationFactor,
		}
	}
	createResults, err := admin.CreateTopics(ctx, specs, kafka.SetAdminOperationTimeout(timeout))
	if err != nil {
		return fmt.Errorf("clean_topics: create topics: %w", err)
	}
	for _, r := range createResults {
		if r.Error.Code() != kafka.ErrNoError && r.Error.Code() != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("clean_topics: create topic %q failed: %v", r.Topic, r.Error.String())
		}
	}

	return nil
}
