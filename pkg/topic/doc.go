// Package topic provides a normalized, validated string key type for databus
// registries.
//
// Topic implements Validate, so registries keyed by Topic reject malformed
// names with databus.ErrBadKey when a publisher or subscriber is created.
// Pair it with Normalize as the registry key normalizer so that topics built by
// plain conversion are folded the same way as those built with New:
//
//	reg := databus.NewMulti[topic.Topic, Order](databus.WithNormalizer(topic.Normalize))
//
//	pub, err := databus.NewPublisher(topic.MustNew("Orders.Created"), reg)
//	sub, err := databus.NewSubscriber(topic.Topic("orders.created"), handle, reg)
//	// both handles share the slot for "orders.created"
package topic
