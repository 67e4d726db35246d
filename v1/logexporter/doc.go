// Package logexporter provides a processor.Exporter that writes an end record
// for every exported span to a logger.Sink.
//
// Export always succeeds: the record is handed to the sink synchronously and
// the sink does not report write failures per entry. Failures surface on Flush,
// which syncs every handler of the sink and reports the combined error.
//
// Basic usage:
//
//	log, err := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//	if err != nil {
//	    return err
//	}
//	exp := logexporter.NewExporter(log)
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
package logexporter
