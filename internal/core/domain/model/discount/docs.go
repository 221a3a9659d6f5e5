// Package discount models discount codes and their usage counter.
package discount
