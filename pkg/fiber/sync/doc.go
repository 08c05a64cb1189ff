/*
Package sync provides fiber-aware synchronization primitives: Mutex,
Cond, Event, and Semaphore. They are built directly on
pkg/fiber's Suspend/Wake pair and are fiber-aware only — blocking on them
from a goroutine that is not running as a fiber (i.e. one never handed a
*fiber.This) has undefined semantics, same restriction as spec §4.4
documents for boost::fibers::mutex and boost::fibers::condition_variable.

Mutex.Unlock and Cond.Notify* must tolerate a waiter that raced a
timeout or an interrupt and is no longer actually waiting: every pop from
a FIFO waiter queue here checks fiber.Wake's return value and skips ahead
to the next waiter on a stale entry, so a resource is never handed to a
fiber that is not coming back for it.
*/
package sync
