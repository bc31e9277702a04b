// Package presentation turns a targeted content item into something a host
// UI can render.
//
// FromContent classifies an item as Embedded (a web page loaded from the
// item's view URL) or Native (a sequence of slides). ResolveChrome computes
// the modal surrounding either kind, filling in defaults when the item does
// not describe one:
//
//	p, err := presentation.FromContent(item)
//	if err != nil {
//	    return err
//	}
//	chrome := presentation.ResolveChrome(item.MobileModal)
//
//	switch v := p.(type) {
//	case presentation.Embedded:
//	    webView.Load(v.ViewURL)
//	case presentation.Native:
//	    for _, s := range v.Slides {
//	        ...
//	    }
//	}
package presentation
