// Package mockapi is a local stand-in for the WaveCX targeted-content API.
//
// It serves POST /{organizationCode}/targeted-content-events with content
// taken from a YAML catalog:
//
//	organizations:
//	  acme:
//	    signingSecret: s3cret      # optional; enables user id verification
//	    content:
//	      - triggerPoint: home
//	        presentationType: popup
//	        viewUrl: https://content.example.com/acme/welcome
//	        users: [u-1]           # optional; empty means everyone
//	        mobileModal:
//	          type: pageSheet
//	          title: Welcome
//	          closeButton: {style: text, label: Done}
//
// A session-started event issues a session token (a UUID) that later
// session-refresh events must present. Unknown organizations get 404, which
// the SDK client treats as "no content". Every accepted event is recorded
// and available from Events.
package mockapi
