// Package timetext extracts clock times from free-form event titles.
//
// Titles on the venue calendar embed times in a handful of loosely
// consistent Swedish formats ("Kl.12-17", "Från Kl.17.00", "19:00-23:00",
// "Kl.22.00, 23+"). Parse applies one rule per format in strict priority
// order; a title matching none of them is an all-day event.
package timetext
