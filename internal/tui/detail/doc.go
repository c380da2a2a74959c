// Package detail provides the lazily loaded record page of the browser.
//
// A record and its related collections are fetched only when the page opens.
// While the fetch runs a spinner is shown. A failed fetch is reported inline
// and can be retried with 'r' without leaving the page.
package detail
