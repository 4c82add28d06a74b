// Package dapnet is a typed client for the DAPNET v1 REST API, the
// decentralized amateur paging network run at hampager.de.
//
// # Overview
//
// The package provides:
//  1. Read models for the API's resources: Node, Transmitter,
//     TransmitterGroup, Callsign, Rubric, News, Call and Statistics.
//  2. Validated outgoing payloads, OutgoingCall and OutgoingNews, which can
//     only be obtained through NewOutgoingCall / NewOutgoingNews.
//  3. Client, one method per resource plus NewCall and NewNews.
//
// # Results
//
// Read methods return (value, found, err). A 404 from the API is reported as
// found == false with a nil error. A 200 with an empty JSON list is found
// with an empty slice.
//
// # Errors
//
//   - *APIError for any other non-2xx status (see IsStatus);
//   - ErrValidation (ErrTextRequired, ErrTextTooLong) from the constructors;
//   - ErrUnknownToken when an enum field carries an unknown value;
//   - transport and URL errors, wrapped with %w.
//
// Nothing is retried, cached or logged at error level. Pass WithLogger to see
// Debug request traces.
//
// Example:
//
//	client, err := dapnet.New(os.Getenv("DAPNET_USERNAME"), os.Getenv("DAPNET_PASSWORD"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	transmitters, _, err := client.GetAllTransmitters(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range transmitters {
//		fmt.Println(t.Name)
//	}
package dapnet
