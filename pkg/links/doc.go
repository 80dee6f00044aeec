// Package links defines the print link contracts used by the presenter.
// A Builder turns a LinkRequest into the URL of the print view; an Observer
// is told about every link that was handed out. NopObserver is the default.
package links
