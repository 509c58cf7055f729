// Package mongodb implements the user and station repositories on MongoDB.
// Record ids are ObjectIDs exposed as hex strings; a string that is not a
// valid ObjectID never matches a record.
package mongodb
