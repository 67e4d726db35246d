/*
Package rabbit provides a span exporter that publishes finished spans to a
RabbitMQ exchange.

Every span becomes one persistent message whose body is the span encoded with
the configured spanrecord.Encoding. The message carries a random MessageId
and the trace id, span id and span name as headers. The channel runs in
publisher-confirm mode: an export completes when the broker acks the message
and fails when it is nacked or not confirmed within ConfirmTimeout.

Publishing happens on background goroutines, so Export never waits on the
network. Flush waits for outstanding confirms; Shutdown additionally closes
the channel and the connection. Spans exported after Shutdown fail with
ErrClosed.

Connection loss is handled by RetryConnection, which re-dials and reopens the
confirm channel. The FX module runs it for the lifetime of the application.

Basic usage:

	exp, err := rabbit.NewExporter(rabbit.Config{
		Connection: rabbit.Connection{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Channel: rabbit.Channel{
			ExchangeName:    "spans",
			QueueName:       "spans",
			DeclareTopology: true,
		},
		Encoding: spanrecord.EncodingProtobuf,
	})
	if err != nil {
		return err
	}
	go exp.RetryConnection()

	proc, err := processor.NewProcessor(processor.Config{}, exp, log)

Configuration can be loaded from YAML or environment variables:

	RABBITMQ_HOST=localhost
	RABBITMQ_PORT=5672
	RABBITMQ_USER=guest
	RABBITMQ_PASSWORD=guest
	RABBITMQ_EXCHANGE_NAME=spans
	RABBITMQ_ROUTING_KEY=trek.spans
	RABBITMQ_CONFIRM_TIMEOUT=10s
*/
package rabbit
