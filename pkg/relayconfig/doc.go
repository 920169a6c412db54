/*
Package relayconfig loads the YAML file that describes a play's cohort
for cmd/relayctl: which transport to connect to, how to log, and the
queue descriptors a consumer actor pulls from.

A config file looks like:

	play: ingest
	transport:
	  kind: memory   # or "nats"
	  url: nats://127.0.0.1:4222
	log:
	  level: info
	  json: false
	queues:
	  - name: orders.process
	    filters: ["orders.*.created"]
	    maxPending: 128
	    maxWait: 30s
	    deliveryPolicy: ALL

Load fills an unset play name, transport kind and log level with
"relayctl", "memory" and "info".
*/
package relayconfig
