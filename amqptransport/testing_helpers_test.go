package amqptransport

import "github.com/streadway/amqp"

// deliveryFromPublishing builds the amqp.Delivery a broker would hand back
// to a consumer for a message published as pub, letting the codec tests
// exercise Encode/Decode as a round trip without a live broker.
func deliveryFromPublishing(pub amqp.Publishing) amqp.Delivery {
	return amqp.Delivery{
		Headers:         pub.Headers,
		ContentType:     pub.ContentType,
		ContentEncoding: pub.ContentEncoding,
		DeliveryMode:    pub.DeliveryMode,
		Priority:        pub.Priority,
		CorrelationId:   pub.CorrelationId,
		ReplyTo:         pub.ReplyTo,
		Expiration:      pub.Expiration,
		MessageId:       pub.MessageId,
		Timestamp:       pub.Timestamp,
		Type:            pub.Type,
		UserId:          pub.UserId,
		AppId:           pub.AppId,
		Body:            pub.Body,
	}
}
