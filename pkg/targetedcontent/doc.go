// Package targetedcontent talks to the WaveCX targeted-content API.
//
// It defines the content model returned by the API, the Gateway contract the
// provider uses to report events, and Client, the HTTP implementation of that
// contract.
//
// # Wire contract
//
// Every event is a JSON POST to
//
//	{baseURL}/{organizationCode}/targeted-content-events
//
// with a body of the form
//
//	{"type":"trigger-point","userId":"u-1","triggerPoint":"checkout",
//	 "platform":"mobile","userData":{"attributes":{"plan":"pro"}}}
//
// and a response of the form
//
//	{"content":[...],"sessionToken":"...","expiresIn":900}
//
// A non-2xx response is not an error: the client logs it and returns an empty
// result, matching how the API signals "nothing for you". Transport and decode
// failures are returned as errors wrapping ErrTransport and ErrDecodeResponse;
// the provider degrades them to "no content" as well.
//
// # Usage
//
//	client := targetedcontent.NewClient(
//	    targetedcontent.WithBaseURL("https://api.wavecx.com"),
//	    targetedcontent.WithTimeout(10*time.Second),
//	)
//	res, err := client.FireEvent(ctx, targetedcontent.EventRequest{
//	    Type:             targetedcontent.EventSessionStarted,
//	    OrganizationCode: "acme",
//	    UserID:           "u-1",
//	})
package targetedcontent
